package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locvowork/erp_office_note/internal/docx"
	"github.com/locvowork/erp_office_note/internal/docx/docxtest"
	"github.com/locvowork/erp_office_note/internal/workbook/workbooktest"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_FILE_PATH", "")
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCheckCommand(t *testing.T) {
	dir := t.TempDir()
	wb := writeFile(t, dir, "checklist.xlsx", workbooktest.SampleChecklist("Missing declaration", "Late filing").MustBytes())

	out, err := run(t, "check", wb)
	require.NoError(t, err)
	assert.Contains(t, out, "Deficiencies and Non-compliances found (2)")
	assert.Contains(t, out, "  1. Missing declaration")
	assert.Contains(t, out, "  2. Late filing")

	clean := writeFile(t, dir, "clean.xlsx", workbooktest.SampleChecklist().MustBytes())
	out, err = run(t, "check", clean)
	require.NoError(t, err)
	assert.Contains(t, out, "No compliance issues detected!")

	_, err = run(t, "check", filepath.Join(dir, "missing.xlsx"))
	assert.Error(t, err)
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	wb := writeFile(t, dir, "checklist.xlsx", workbooktest.SampleChecklist().MustBytes())
	tpl := writeFile(t, dir, "template.docx", docxtest.SampleTemplate().MustBytes())
	out := filepath.Join(dir, "note.docx")

	stdout, err := run(t, "render", wb, "--template", tpl, "--out", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Office note written to "+out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	_, err = docx.Open(data)
	assert.NoError(t, err)

	t.Run("BadTemplate", func(t *testing.T) {
		_, err := run(t, "render", wb, "--template", filepath.Join(dir, "nope.docx"), "--out", out+".2")
		assert.Error(t, err)
		assert.NoFileExists(t, out+".2")
	})
}
