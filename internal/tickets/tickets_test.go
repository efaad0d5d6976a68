package tickets

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yildirimberke/berke-terminal-dashboard/internal/domain/models"
	apphttp "github.com/yildirimberke/berke-terminal-dashboard/pkg/http"
)

type memStore struct {
	saved []models.Ticket
}

func (m *memStore) SaveTicket(itemsJSON, notes string, at time.Time) (int64, error) {
	m.saved = append(m.saved, models.Ticket{
		ID:        int64(len(m.saved) + 1),
		Timestamp: at,
		ItemsJSON: itemsJSON,
		Status:    "open",
		Notes:     notes,
	})
	return int64(len(m.saved)), nil
}

func (m *memStore) Tickets(limit int) ([]models.Ticket, error) {
	if limit > len(m.saved) {
		limit = len(m.saved)
	}
	out := make([]models.Ticket, limit)
	for i := 0; i < limit; i++ {
		out[i] = m.saved[len(m.saved)-1-i]
	}
	return out, nil
}

func TestCreateAndList(t *testing.T) {
	store := &memStore{}
	s := NewService(store)

	id, err := s.Create([]Item{{Key: "cds", Issue: "stale"}}, "seen at open")
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	recent, err := s.Recent(10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "open", recent[0].Status)
	assert.JSONEq(t, `[{"key":"cds","issue":"stale"}]`, recent[0].ItemsJSON)
	assert.Equal(t, "seen at open", recent[0].Notes)
}

func TestCreateRequiresItems(t *testing.T) {
	s := NewService(&memStore{})

	_, err := s.Create(nil, "empty")
	require.Error(t, err)
	var appErr *apphttp.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "ERR_VALIDATION", appErr.Code)
}
