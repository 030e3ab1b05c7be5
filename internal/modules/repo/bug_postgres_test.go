package repo

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vpvn/bugreports/internal/infra/db"
	"github.com/vpvn/bugreports/internal/modules/model"
)

// setupPostgresTestDB connects to BUGREPORTS_TEST_DSN, e.g.
// "host=localhost user=bugreports password=bugreports dbname=bugreports_test port=5432 sslmode=disable".
func setupPostgresTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("BUGREPORTS_TEST_DSN")
	if dsn == "" {
		t.Skip("BUGREPORTS_TEST_DSN not set, skipping postgres integration tests")
	}
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Skipf("Test database not available, skipping integration tests: %v", err)
	}
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(32)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(gdb))
	return gdb
}

func TestBugRepo_GetOrCreate_PostgresContention(t *testing.T) {
	gdb := setupPostgresTestDB(t)
	ctx := context.Background()

	projectID := "pg-" + uuid.NewString()[:8]
	require.NoError(t, NewProjectRepo(gdb).Create(ctx, &model.Project{ID: projectID, Name: "contention"}))
	t.Cleanup(func() { gdb.Exec("DELETE FROM projects WHERE id = ?", projectID) })

	r := NewBugRepo(gdb)
	tx := NewTransactor(gdb)

	for round := 0; round < 5; round++ {
		text := fmt.Sprintf("race %d", round)

		const workers = 16
		ids := make([]int64, workers)
		errs := make([]error, workers)
		var created int
		var mu sync.Mutex
		var wg sync.WaitGroup
		start := make(chan struct{})
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				<-start
				// each caller holds its own transaction, as report intake does
				errs[i] = tx.Transaction(ctx, func(ctx context.Context) error {
					b, isNew, err := r.GetOrCreate(ctx, model.NewBug(projectID, text))
					if err != nil {
						return err
					}
					mu.Lock()
					defer mu.Unlock()
					ids[i] = b.ID
					if isNew {
						created++
					}
					return nil
				})
			}(i)
		}
		close(start)
		wg.Wait()

		for _, err := range errs {
			require.NoError(t, err)
		}
		assert.Equal(t, 1, created, text)
		for _, id := range ids {
			assert.Equal(t, ids[0], id, text)
		}

		var n int64
		require.NoError(t, gdb.Model(&model.Bug{}).Where("project_id = ? AND exception_text = ?", projectID, text).Count(&n).Error)
		assert.Equal(t, int64(1), n, text)
	}
}
