package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"test-extractor/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	_ "modernc.org/sqlite"
)

func writeFixtures(t *testing.T) (dir, configPath string) {
	t.Helper()
	dir = t.TempDir()

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Вопрос", 1}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"Кто выдаёт наряд?", "A"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{"Срок действия?", "B"}))
	require.NoError(t, f.SaveAs(filepath.Join(dir, "наряд-допуск-2.xlsx")))
	require.NoError(t, f.Close())

	configPath = filepath.Join(dir, "config.yaml")
	body := fmt.Sprintf(`
logger:
  env: production
sources:
  - name: "Тестирование по нарядам-допускам"
    path: %q
output:
  script_path: %q
  database_path: %q
`, filepath.Join(dir, "наряд-допуск-2.xlsx"), filepath.Join(dir, "out", "tests.sql"), filepath.Join(dir, "out", "tests.sqlite"))
	require.NoError(t, os.WriteFile(configPath, []byte(body), 0o644))
	return dir, configPath
}

func TestRootCmd_BuildsDatabase(t *testing.T) {
	dir, configPath := writeFixtures(t)

	cmd := newRootCmd()
	cmd.SetArgs([]string{"--config", configPath})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	db, err := sqlx.Open("sqlite", filepath.Join(dir, "out", "tests.sqlite"))
	require.NoError(t, err)
	defer db.Close()

	var names []string
	require.NoError(t, db.Select(&names, "SELECT name FROM tests ORDER BY id"))
	assert.Equal(t, []string{"Тестирование по нарядам-допускам"}, names)

	var questions int
	require.NoError(t, db.Get(&questions, "SELECT COUNT(*) FROM questions"))
	assert.Equal(t, 2, questions)

	_, err = os.Stat(filepath.Join(dir, "out", "tests.sql"))
	assert.NoError(t, err)
}

func TestRootCmd_PackageExtractionFailure(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	body := fmt.Sprintf(`
sources:
  - name: "Электробезопасность"
    path: %q
extractor:
  tool: %q
output:
  script_path: %q
  database_path: %q
`, filepath.Join(dir, "elektro.apk"), filepath.Join(dir, "no-such-apktool"), filepath.Join(dir, "tests.sql"), filepath.Join(dir, "tests.sqlite"))
	require.NoError(t, os.WriteFile(configPath, []byte(body), 0o644))

	err := run(context.Background(), configPath)

	require.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.ErrExtractionFailed))
	_, statErr := os.Stat(filepath.Join(dir, "tests.sqlite"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRootCmd_RejectsArgs(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"unexpected"})
	assert.Error(t, cmd.Execute())
}
