package service

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSequenceSource struct {
	lastID   uint
	existing map[string]bool
}

func (f *fakeSequenceSource) LastPaymentID(ctx context.Context) (uint, error) {
	return f.lastID, nil
}

func (f *fakeSequenceSource) OrderIDExists(ctx context.Context, orderID string) (bool, error) {
	return f.existing[orderID], nil
}

func TestOrderIDFormat(t *testing.T) {
	a := NewOrderIDAllocator(&fakeSequenceSource{}, "RYLS", 4, 1)

	assert.Equal(t, "RYLS0001", a.Format(1))
	assert.Equal(t, "RYLS0042", a.Format(42))
	// Lewat kapasitas padding: angka tetap utuh, tidak dipotong.
	assert.Equal(t, "RYLS12345", a.Format(12345))

	assert.Regexp(t, regexp.MustCompile(`^RYLS\d{4,}$`), a.Format(7))
}

func TestOrderIDAllocateFirst(t *testing.T) {
	a := NewOrderIDAllocator(&fakeSequenceSource{existing: map[string]bool{}}, "RYLS", 4, 1)

	id, err := a.Allocate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "RYLS0001", id)
}

func TestOrderIDAllocateFromLastPayment(t *testing.T) {
	src := &fakeSequenceSource{lastID: 41, existing: map[string]bool{}}
	a := NewOrderIDAllocator(src, "RYLS", 4, 1)

	id, err := a.Allocate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "RYLS0042", id)
}

func TestOrderIDAllocateSkipsTaken(t *testing.T) {
	src := &fakeSequenceSource{
		lastID:   1,
		existing: map[string]bool{"RYLS0002": true},
	}
	a := NewOrderIDAllocator(src, "RYLS", 4, 1)

	id, err := a.Allocate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "RYLS0003", id)
}

func TestOrderIDAllocateExhausted(t *testing.T) {
	src := &fakeSequenceSource{
		existing: map[string]bool{
			"RYLS0001": true,
			"RYLS0002": true,
			"RYLS0003": true,
		},
	}
	a := NewOrderIDAllocator(src, "RYLS", 4, 1)

	_, err := a.Allocate(context.Background())
	require.Error(t, err)
	assert.Equal(t, KindReconciliation, KindOf(err))
}
