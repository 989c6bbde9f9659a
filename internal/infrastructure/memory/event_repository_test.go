package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WojciechWarchol/java-gmp-rest/internal/domain/event"
)

func seedEvents(t *testing.T, repo *EventRepository, n int) []*event.Event {
	t.Helper()
	ctx := context.Background()

	saved := make([]*event.Event, 0, n)
	for i := 1; i <= n; i++ {
		e, err := repo.Save(ctx, event.NewEvent(
			fmt.Sprintf("イベント%02d", i),
			"東京",
			"佐藤太郎",
			"conference",
			time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC).AddDate(0, 0, i),
		))
		require.NoError(t, err)
		saved = append(saved, e)
	}
	return saved
}

func TestEventRepository_Save_AssignsSequentialIDs(t *testing.T) {
	repo := NewEventRepository()
	saved := seedEvents(t, repo, 3)

	assert.Equal(t, int64(1), saved[0].ID)
	assert.Equal(t, int64(2), saved[1].ID)
	assert.Equal(t, int64(3), saved[2].ID)
}

func TestEventRepository_Save_UpdatesExisting(t *testing.T) {
	repo := NewEventRepository()
	ctx := context.Background()
	saved := seedEvents(t, repo, 1)

	saved[0].Title = "変更後タイトル"
	updated, err := repo.Save(ctx, saved[0])
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated.ID)

	found, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "変更後タイトル", found.Title)
}

func TestEventRepository_Save_UnknownIDFails(t *testing.T) {
	repo := NewEventRepository()

	_, err := repo.Save(context.Background(), &event.Event{ID: 42, Title: "迷子"})

	assert.ErrorIs(t, err, event.ErrEventNotFound)
}

func TestEventRepository_FindByID_NotFound(t *testing.T) {
	repo := NewEventRepository()

	found, err := repo.FindByID(context.Background(), 999)

	assert.Nil(t, found)
	assert.ErrorIs(t, err, event.ErrEventNotFound)
}

func TestEventRepository_FindByID_ReturnsCopy(t *testing.T) {
	repo := NewEventRepository()
	ctx := context.Background()
	seedEvents(t, repo, 1)

	found, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)

	// 取得結果を書き換えてもストア側には影響しない
	found.Title = "書き換え"

	again, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "イベント01", again.Title)
}

func TestEventRepository_FindAll_Paging(t *testing.T) {
	repo := NewEventRepository()
	ctx := context.Background()
	seedEvents(t, repo, 25)

	t.Run("先頭ページ", func(t *testing.T) {
		page, err := repo.FindAll(ctx, event.NewPageRequest(0, 10))
		require.NoError(t, err)

		assert.Len(t, page.Items, 10)
		assert.Equal(t, int64(25), page.TotalElements)
		assert.Equal(t, 3, page.TotalPages())
		assert.Equal(t, int64(1), page.Items[0].ID)
		assert.Equal(t, int64(10), page.Items[9].ID)
	})

	t.Run("最終ページは端数のみ", func(t *testing.T) {
		page, err := repo.FindAll(ctx, event.NewPageRequest(2, 10))
		require.NoError(t, err)

		assert.Len(t, page.Items, 5)
		assert.Equal(t, int64(21), page.Items[0].ID)
		assert.True(t, page.IsLast())
	})

	t.Run("範囲外のページは空", func(t *testing.T) {
		page, err := repo.FindAll(ctx, event.NewPageRequest(9, 10))
		require.NoError(t, err)

		assert.Empty(t, page.Items)
		assert.Equal(t, int64(25), page.TotalElements)
	})
}

func TestEventRepository_FindAll_IDOrderAfterDelete(t *testing.T) {
	repo := NewEventRepository()
	ctx := context.Background()
	seedEvents(t, repo, 5)

	require.NoError(t, repo.DeleteByID(ctx, 3))

	page, err := repo.FindAll(ctx, event.NewPageRequest(0, 10))
	require.NoError(t, err)

	ids := make([]int64, 0, len(page.Items))
	for _, e := range page.Items {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []int64{1, 2, 4, 5}, ids)
	assert.Equal(t, int64(4), page.TotalElements)
}

func TestEventRepository_FindByTitleContaining(t *testing.T) {
	repo := NewEventRepository()
	ctx := context.Background()

	titles := []string{"GoConf Tokyo", "Rustミートアップ", "GoConf Osaka", "goconf fukuoka", "JSハンズオン"}
	for _, title := range titles {
		_, err := repo.Save(ctx, event.NewEvent(title, "", "", "", time.Time{}))
		require.NoError(t, err)
	}

	t.Run("部分一致のみ返す", func(t *testing.T) {
		page, err := repo.FindByTitleContaining(ctx, "Conf", event.NewPageRequest(0, 10))
		require.NoError(t, err)

		require.Len(t, page.Items, 2)
		assert.Equal(t, "GoConf Tokyo", page.Items[0].Title)
		assert.Equal(t, "GoConf Osaka", page.Items[1].Title)
		assert.Equal(t, int64(2), page.TotalElements)
	})

	t.Run("大文字小文字は区別する", func(t *testing.T) {
		page, err := repo.FindByTitleContaining(ctx, "goconf", event.NewPageRequest(0, 10))
		require.NoError(t, err)

		require.Len(t, page.Items, 1)
		assert.Equal(t, "goconf fukuoka", page.Items[0].Title)
	})

	t.Run("一致なしは空ページ", func(t *testing.T) {
		page, err := repo.FindByTitleContaining(ctx, "存在しない", event.NewPageRequest(0, 10))
		require.NoError(t, err)

		assert.Empty(t, page.Items)
		assert.Equal(t, int64(0), page.TotalElements)
	})
}

func TestEventRepository_FindByTitleContaining_WildcardsAreLiteral(t *testing.T) {
	repo := NewEventRepository()
	ctx := context.Background()

	// %や_はワイルドカードではなくリテラルとして一致する（PostgreSQL実装と同じ挙動）
	titles := []string{"進捗100%報告会", "100日チャレンジ", "Go_Conf", "GoXConf"}
	for _, title := range titles {
		_, err := repo.Save(ctx, event.NewEvent(title, "", "", "", time.Time{}))
		require.NoError(t, err)
	}

	page, err := repo.FindByTitleContaining(ctx, "100%", event.NewPageRequest(0, 10))
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "進捗100%報告会", page.Items[0].Title)

	page, err = repo.FindByTitleContaining(ctx, "Go_Conf", event.NewPageRequest(0, 10))
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Go_Conf", page.Items[0].Title)
}

func TestEventRepository_ExistsByID(t *testing.T) {
	repo := NewEventRepository()
	ctx := context.Background()
	seedEvents(t, repo, 1)

	exists, err := repo.ExistsByID(ctx, 1)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByID(ctx, 999)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestEventRepository_DeleteByID(t *testing.T) {
	repo := NewEventRepository()
	ctx := context.Background()
	seedEvents(t, repo, 1)

	require.NoError(t, repo.DeleteByID(ctx, 1))

	_, err := repo.FindByID(ctx, 1)
	assert.ErrorIs(t, err, event.ErrEventNotFound)

	// 2回目の削除はErrEventNotFound（冪等性の判断はサービス層が行う）
	assert.ErrorIs(t, repo.DeleteByID(ctx, 1), event.ErrEventNotFound)
}
