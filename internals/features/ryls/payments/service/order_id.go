// file: internals/features/ryls/payments/service/order_id.go
package service

import (
	"context"
	"fmt"
)

/* =========================================================
   Order ID allocator: PREFIX + sequence zero-padded.
   Sequence diturunkan dari id ryls_payment terakhir + start;
   unique index di gateway_record_order_id tetap jadi backstop
   terhadap insert balapan.
========================================================= */

const allocateMaxRetry = 3

type sequenceSource interface {
	LastPaymentID(ctx context.Context) (uint, error)
	OrderIDExists(ctx context.Context, orderID string) (bool, error)
}

type OrderIDAllocator struct {
	Store  sequenceSource
	Prefix string
	Width  int
	Start  int64
}

func NewOrderIDAllocator(store sequenceSource, prefix string, width int, start int64) *OrderIDAllocator {
	return &OrderIDAllocator{Store: store, Prefix: prefix, Width: width, Start: start}
}

// Format menghasilkan order id untuk sequence tertentu, mis. RYLS0001.
func (a *OrderIDAllocator) Format(seq int64) string {
	return fmt.Sprintf("%s%0*d", a.Prefix, a.Width, seq)
}

// Allocate mengembalikan order id berikutnya yang belum terpakai.
// Cek eksistensi di sini bukan jaminan tunggal; duplikat saat insert
// tetap terdeteksi oleh constraint dan di-handle pemanggil.
func (a *OrderIDAllocator) Allocate(ctx context.Context) (string, error) {
	lastID, err := a.Store.LastPaymentID(ctx)
	if err != nil {
		return "", err
	}

	seq := int64(lastID) + 1
	if seq < a.Start {
		seq = a.Start
	}

	for i := 0; i < allocateMaxRetry; i++ {
		orderID := a.Format(seq)
		exists, err := a.Store.OrderIDExists(ctx, orderID)
		if err != nil {
			return "", err
		}
		if !exists {
			return orderID, nil
		}
		seq++
	}
	return "", errReconciliation(nil, "gagal alokasi order id setelah %d percobaan", allocateMaxRetry)
}
