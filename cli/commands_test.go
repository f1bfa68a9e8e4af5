package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-bank-ledger/logger"
	"go-bank-ledger/model"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

// bankDir points the storage config at a temp dir shared by every run in
// the test.
func bankDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("BANK_STORAGE_BANK_FILE", filepath.Join(dir, "bank_data.json"))
	t.Setenv("BANK_STORAGE_USERS_FILE", filepath.Join(dir, "users.json"))
	t.Setenv("BANK_PASSWORD", "")
	return dir
}

// run parses and executes args the way main does.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer

	var root struct {
		Commands
	}
	root.LogOutput = io.Discard

	parser, err := kong.New(&root,
		kong.Name("bank"),
		kong.Writers(&stdout, &stderr),
		kong.Exit(func(int) { t.Fatalf("unexpected exit: %s", stderr.String()) }),
		kong.Bind(&root.Globals),
	)
	require.NoError(t, err)

	ctx, err := parser.Parse(append([]string{"--config", dir}, args...))
	if err != nil {
		return stdout.String(), err
	}
	err = ctx.Run()
	return stdout.String(), err
}

func register(t *testing.T, dir, username, customerID string) {
	t.Helper()
	out, err := run(t, dir, "register",
		"--username", username, "--password", "secret",
		"--customer-id", customerID, "--name", "Customer "+customerID,
		"--email", customerID+"@example.com", "--phone", "555")
	require.NoError(t, err)
	assert.Contains(t, out, "Registered "+username)
	assert.Contains(t, out, "ACC-"+customerID)
}

func TestRegisterCmd(t *testing.T) {
	dir := bankDir(t)
	register(t, dir, "alice", "C1")

	_, err := run(t, dir, "register",
		"--username", "alice", "--password", "secret",
		"--customer-id", "C2", "--name", "x", "--email", "x@example.com", "--phone", "1")
	assert.ErrorIs(t, err, model.ErrUsernameTaken)

	_, err = run(t, dir, "register",
		"--username", "bob", "--password", "secret",
		"--customer-id", "C3", "--name", "x", "--email", "not-an-email", "--phone", "1")
	assert.ErrorContains(t, err, "validation failed")
}

func TestLedgerCommands(t *testing.T) {
	dir := bankDir(t)
	register(t, dir, "alice", "C1")
	register(t, dir, "bob", "C2")
	login := []string{"--username", "alice", "--password", "secret"}

	out, err := run(t, dir, append([]string{"deposit", "ACC-C1", "100"}, login...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Deposit: $100.00 (Account: ACC-C1)")
	assert.Contains(t, out, "balance: $100.00")

	out, err = run(t, dir, append([]string{"withdraw", "ACC-C1", "40"}, login...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "balance: $60.00")

	out, err = run(t, dir, append([]string{"transfer", "ACC-C1", "ACC-C2", "25"}, login...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Transfer Out: $25.00")
	assert.Contains(t, out, "balance: $35.00")

	_, err = run(t, dir, append([]string{"withdraw", "ACC-C1", "1000"}, login...)...)
	assert.ErrorIs(t, err, model.ErrInsufficientFunds)

	_, err = run(t, dir, append([]string{"deposit", "ACC-C1", "0"}, login...)...)
	assert.ErrorIs(t, err, model.ErrInvalidAmount)

	_, err = run(t, dir, append([]string{"deposit", "ACC-C2", "5"}, login...)...)
	assert.ErrorIs(t, err, model.ErrPermissionDenied)

	_, err = run(t, dir, append([]string{"transfer", "ACC-C1", "ACC-C1", "5"}, login...)...)
	assert.ErrorIs(t, err, model.ErrSameAccountTransfer)

	out, err = run(t, dir, append([]string{"accounts"}, login...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Account ACC-C1 (Balance: $35.00)")

	out, err = run(t, dir, append([]string{"history", "ACC-C1"}, login...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Deposit: $100.00")
	assert.Contains(t, out, "Withdrawal: $40.00")
	assert.Contains(t, out, "Transfer Out: $25.00")

	out, err = run(t, dir, "history", "ACC-C2", "--username", "bob", "--password", "secret")
	require.NoError(t, err)
	assert.Contains(t, out, "Transfer In: $25.00")
}

func TestOpenCmd(t *testing.T) {
	dir := bankDir(t)
	register(t, dir, "alice", "C1")
	register(t, dir, "bob", "C2")
	login := []string{"--username", "alice", "--password", "secret"}

	out, err := run(t, dir, append([]string{"open-account", "CHK-C1", "--type", "Checking"}, login...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Opened Checking account")
	assert.Contains(t, out, "CHK-C1")

	out, err = run(t, dir, append([]string{"deposit", "CHK-C1", "15"}, login...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "balance: $15.00")

	out, err = run(t, dir, append([]string{"accounts"}, login...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "ACC-C1")
	assert.Contains(t, out, "CHK-C1")

	_, err = run(t, dir, append([]string{"open-account", "ACC-C2"}, login...)...)
	assert.ErrorIs(t, err, model.ErrDuplicateAccount)
}

func TestCommands_Authentication(t *testing.T) {
	dir := bankDir(t)
	register(t, dir, "alice", "C1")

	_, err := run(t, dir, "accounts", "--username", "alice", "--password", "wrong")
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)

	t.Setenv("BANK_PASSWORD", "secret")
	out, err := run(t, dir, "accounts", "--username", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, "ACC-C1")
}

func TestAmount_Decode(t *testing.T) {
	dir := bankDir(t)
	register(t, dir, "alice", "C1")

	_, err := run(t, dir, "deposit", "ACC-C1", "ten", "--username", "alice", "--password", "secret")
	assert.ErrorContains(t, err, `invalid amount "ten"`)
}
