package odm_test

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/dockv/dockv/client"
	"github.com/dockv/dockv/odm"
	"github.com/dockv/dockv/rpc/common"
	"github.com/dockv/dockv/rpc/serializer"
	"github.com/dockv/dockv/rpc/server"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// newTestClient starts a development server and a connected manager, both
// torn down via t.Cleanup
func newTestClient(t *testing.T) *client.Client {
	t.Helper()

	ser, err := serializer.ForName("json")
	require.NoError(t, err)

	srv := server.NewServer("", ser)
	require.NoError(t, srv.Listen("tcp", "127.0.0.1:0"))
	t.Cleanup(func() { srv.Close() })

	c, err := client.New(common.ClientConfig{
		Network:          "tcp",
		Host:             "127.0.0.1",
		Port:             srv.Addr().(*net.TCPAddr).Port,
		SocketTimeoutSec: 2,
	})
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })

	require.True(t, c.IsConnected())
	return c
}

func TestRepositoryCRUD(t *testing.T) {
	c := newTestClient(t)
	typ := odm.MustType("RepoTestAccount", newAccount)
	repo := odm.NewRepository(c, typ)

	acc := &Account{ID: "acc_001", Holder: "John Smith", Balance: 1000.00}

	t.Run("Save", func(t *testing.T) {
		saved, ok, err := repo.Save(acc)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, acc, saved)
	})

	t.Run("FindByID", func(t *testing.T) {
		found, ok, err := repo.FindByID("acc_001")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, acc, found)
	})

	t.Run("Update", func(t *testing.T) {
		acc.Balance = 1500.00
		_, ok, err := repo.Save(acc)
		require.NoError(t, err)
		require.True(t, ok)

		found, ok, err := repo.FindByID("acc_001")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, 1500.00, found.Balance)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(acc))

		_, ok, err := repo.FindByID("acc_001")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestRepositoryFindAll(t *testing.T) {
	c := newTestClient(t)
	typ := odm.MustType("RepoTestFindAll", newAccount)
	repo := odm.NewRepository(c, typ)

	t.Run("Empty", func(t *testing.T) {
		docs, err := repo.FindAll()
		require.NoError(t, err)
		require.NotNil(t, docs)
		assert.Empty(t, docs)
	})

	t.Run("All", func(t *testing.T) {
		for _, acc := range []*Account{
			{ID: "acc_001", Holder: "John Smith", Balance: 1000.00},
			{ID: "acc_002", Holder: "Jane Doe", Balance: 250.50},
		} {
			_, ok, err := repo.Save(acc)
			require.NoError(t, err)
			require.True(t, ok)
		}

		docs, err := repo.FindAll()
		require.NoError(t, err)
		require.Len(t, docs, 2)

		// identifiers are recovered from the store keys
		assert.Equal(t, "acc_001", docs[0].ID)
		assert.Equal(t, "John Smith", docs[0].Holder)
		assert.Equal(t, "acc_002", docs[1].ID)
		assert.Equal(t, 250.50, docs[1].Balance)
	})
}

func TestRepositoryTypeScoping(t *testing.T) {
	c := newTestClient(t)

	accounts := odm.NewRepository(c, odm.MustType("RepoTestScopeAccount", newAccount))
	audits := odm.NewRepository(c, odm.MustType("RepoTestScopeAccountAudit", newAccount))

	_, ok, err := accounts.Save(&Account{ID: "acc_001", Holder: "John Smith"})
	require.NoError(t, err)
	require.True(t, ok)
	_, ok, err = audits.Save(&Account{ID: "acc_001", Holder: "audit entry"})
	require.NoError(t, err)
	require.True(t, ok)

	// each repository only sees documents of its own type, even with a
	// shared key base prefix
	docs, err := accounts.FindAll()
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "John Smith", docs[0].Holder)
}

func TestRepositoryPayloadExcludesID(t *testing.T) {
	c := newTestClient(t)
	typ := odm.MustType("RepoTestPayload", newAccount)
	repo := odm.NewRepository(c, typ)

	_, ok, err := repo.Save(&Account{ID: "acc_001", Holder: "John Smith", Balance: 1000.00})
	require.NoError(t, err)
	require.True(t, ok)

	key, err := typ.KeyOf("acc_001")
	require.NoError(t, err)
	payload, found := c.Get(key)
	require.True(t, found)

	assert.JSONEq(t, `{"holder":"John Smith","balance":1000}`, string(payload))
}

func TestRepositoryMalformedPayload(t *testing.T) {
	c := newTestClient(t)
	typ := odm.MustType("RepoTestMalformed", newAccount)
	repo := odm.NewRepository(c, typ)

	key, err := typ.KeyOf("acc_001")
	require.NoError(t, err)
	require.True(t, c.Set(key, []byte(`{not json`)))

	t.Run("FindByID", func(t *testing.T) {
		_, ok, err := repo.FindByID("acc_001")
		assert.Error(t, err)
		assert.False(t, ok)
	})

	t.Run("FindAll", func(t *testing.T) {
		docs, err := repo.FindAll()
		assert.Error(t, err)
		require.NotNil(t, docs)
	})
}

func TestRepositoryEmptyID(t *testing.T) {
	c := newTestClient(t)
	repo := odm.NewRepository(c, odm.MustType("RepoTestEmptyID", newAccount))

	_, ok, err := repo.Save(&Account{Holder: "no id"})
	require.ErrorIs(t, err, odm.ErrEmptyID)
	assert.False(t, ok)

	_, ok, err = repo.FindByID("")
	require.ErrorIs(t, err, odm.ErrEmptyID)
	assert.False(t, ok)

	require.ErrorIs(t, repo.Delete(&Account{}), odm.ErrEmptyID)
}

func TestRepositoryInertType(t *testing.T) {
	c := newTestClient(t)

	var invalid odm.Type[*Account]
	repo := odm.NewRepository(c, invalid)

	// every operation is a silent no-op
	_, ok, err := repo.Save(&Account{ID: "acc_001"})
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = repo.FindByID("acc_001")
	require.NoError(t, err)
	assert.False(t, ok)

	docs, err := repo.FindAll()
	require.NoError(t, err)
	require.NotNil(t, docs)
	assert.Empty(t, docs)

	require.NoError(t, repo.Delete(&Account{ID: "acc_001"}))
}
