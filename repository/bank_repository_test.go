package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go-bank-ledger/logger"
	"go-bank-ledger/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

// memoryStore is an in-memory IDocumentStore.
type memoryStore struct {
	data []byte
}

func (s *memoryStore) Read(context.Context) ([]byte, error) {
	if s.data == nil {
		return nil, ErrDocumentNotFound
	}
	return s.data, nil
}

func (s *memoryStore) Write(_ context.Context, data []byte) error {
	s.data = append([]byte(nil), data...)
	return nil
}

func buildCustomers(t *testing.T) []*model.Customer {
	t.Helper()
	c1 := model.NewCustomer("C1", "Ada", "ada@example.com", "555-0100")
	a1 := model.NewAccount("ACC-C1", "C1", decimal.Zero, "")
	c1.AddAccount(a1)
	c2 := model.NewCustomer("C2", "Grace", "grace@example.com", "555-0101")
	a2 := model.NewAccount("ACC-C2", "C2", decimal.Zero, "Checking")
	c2.AddAccount(a2)

	_, err := a1.Deposit(decimal.RequireFromString("100.10"))
	require.NoError(t, err)
	_, err = a1.Withdraw(decimal.RequireFromString("40"))
	require.NoError(t, err)
	_, _, err = a1.Transfer(decimal.RequireFromString("25.05"), a2)
	require.NoError(t, err)
	return []*model.Customer{c1, c2}
}

func assertSameCustomers(t *testing.T, want, got []*model.Customer) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		wc, gc := want[i], got[i]
		assert.Equal(t, wc.ID, gc.ID)
		assert.Equal(t, wc.Name, gc.Name)
		assert.Equal(t, wc.Email, gc.Email)
		assert.Equal(t, wc.Phone, gc.Phone)

		wa, ga := wc.GetAllAccounts(), gc.GetAllAccounts()
		require.Len(t, ga, len(wa))
		for j := range wa {
			assert.Equal(t, wa[j].Number, ga[j].Number)
			assert.Equal(t, wa[j].CustomerID, ga[j].CustomerID)
			assert.Equal(t, wa[j].Type, ga[j].Type)
			assert.True(t, wa[j].Balance.Equal(ga[j].Balance), "balance %s != %s", wa[j].Balance, ga[j].Balance)

			wt, gt := wa[j].TransactionHistory(), ga[j].TransactionHistory()
			require.Len(t, gt, len(wt))
			for k := range wt {
				assert.True(t, wt[k].Amount.Equal(gt[k].Amount))
				assert.Equal(t, wt[k].Kind, gt[k].Kind)
				assert.True(t, wt[k].Timestamp.Equal(gt[k].Timestamp), "timestamp %v != %v", wt[k].Timestamp, gt[k].Timestamp)
				assert.Equal(t, wt[k].AccountNumber, gt[k].AccountNumber)
				assert.Equal(t, wt[k].RelatedAccount, gt[k].RelatedAccount)
			}
		}
	}
}

func TestBankRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewBankRepository(NewFileDocumentStore(filepath.Join(t.TempDir(), "bank_data.json")))
	customers := buildCustomers(t)

	require.NoError(t, repo.Save(ctx, customers))
	loaded, err := repo.Load(ctx)
	require.NoError(t, err)

	assertSameCustomers(t, customers, loaded)
}

func TestBankRepository_TimestampPrecision(t *testing.T) {
	orig := model.Now
	ts := time.Date(2025, 6, 7, 8, 9, 10, 123456789, time.UTC)
	model.Now = func() time.Time { return ts }
	defer func() { model.Now = orig }()

	store := &memoryStore{}
	repo := NewBankRepository(store)
	c := model.NewCustomer("C1", "Ada", "a@b.c", "1")
	a := model.NewAccount("ACC-C1", "C1", decimal.Zero, "")
	c.AddAccount(a)
	_, err := a.Deposit(decimal.NewFromInt(1))
	require.NoError(t, err)

	require.NoError(t, repo.Save(context.Background(), []*model.Customer{c}))
	assert.Contains(t, string(store.data), `"timestamp": "2025-06-07T08:09:10.123456789Z"`)

	loaded, err := repo.Load(context.Background())
	require.NoError(t, err)
	got := loaded[0].GetAllAccounts()[0].TransactionHistory()[0].Timestamp
	assert.True(t, ts.Equal(got))
}

func TestBankRepository_LoadsLegacyDocument(t *testing.T) {
	store := &memoryStore{data: []byte(`{
    "customers": [
        {
            "customer_id": "7",
            "name": "Linus",
            "email": "l@example.com",
            "phone": "42",
            "accounts": [
                {
                    "account_number": "ACC-7",
                    "balance": 74.5,
                    "transactions": [
                        {
                            "amount": 100.0,
                            "transaction_type": "Deposit",
                            "timestamp": "2024-05-01T10:11:12.345678",
                            "account_number": "ACC-7",
                            "related_account": null
                        },
                        {
                            "amount": 25.5,
                            "transaction_type": "Transfer Out",
                            "timestamp": "2024-05-01T10:12:00",
                            "account_number": "ACC-7",
                            "related_account": "ACC-8"
                        }
                    ]
                }
            ]
        }
    ]
}`)}

	customers, err := NewBankRepository(store).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, customers, 1)

	acc := customers[0].GetAllAccounts()[0]
	assert.Equal(t, model.DefaultAccountType, acc.Type)
	assert.Equal(t, "7", acc.CustomerID)
	assert.True(t, acc.Balance.Equal(decimal.RequireFromString("74.5")))

	history := acc.TransactionHistory()
	require.Len(t, history, 2)
	assert.Equal(t, model.KindDeposit, history[0].Kind)
	assert.Empty(t, history[0].RelatedAccount)
	assert.Equal(t, 345678000, history[0].Timestamp.In(time.Local).Nanosecond())
	assert.Equal(t, model.KindTransferOut, history[1].Kind)
	assert.Equal(t, "ACC-8", history[1].RelatedAccount)
}

func TestBankRepository_Malformed(t *testing.T) {
	cases := map[string]string{
		"not json":        `{"customers": [`,
		"missing id":      `{"customers": [{"name": "x"}]}`,
		"missing balance": `{"customers": [{"customer_id": "1", "accounts": [{"account_number": "A"}]}]}`,
		"unknown kind":    `{"customers": [{"customer_id": "1", "accounts": [{"account_number": "A", "balance": 1, "transactions": [{"amount": 1, "transaction_type": "Refund", "timestamp": "2024-01-01T00:00:00Z"}]}]}]}`,
		"bad timestamp":   `{"customers": [{"customer_id": "1", "accounts": [{"account_number": "A", "balance": 1, "transactions": [{"amount": 1, "transaction_type": "Deposit", "timestamp": "yesterday"}]}]}]}`,
		"balance not num": `{"customers": [{"customer_id": "1", "accounts": [{"account_number": "A", "balance": "lots"}]}]}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewBankRepository(&memoryStore{data: []byte(body)}).Load(context.Background())
			assert.ErrorIs(t, err, ErrMalformedDocument)
		})
	}
}

func TestBankRepository_LoadMissing(t *testing.T) {
	_, err := NewBankRepository(&memoryStore{}).Load(context.Background())
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}
