package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"risesocial_backend/internals/features/ryls/payments/dto"
)

const testServerKey = "SB-Mid-server-testkey"

// Vector dihitung dari sha512_hex(order_id + status_code + gross_amount + server_key).
const testSignature = "32313fe194c028e17d5c164b627ea1d3ee9288814b061a5859cb9e4250d2bb970b6da024ca2f0024b49f72cdd207b1cab0400939d1c7eab40b73b999a5788309"

func testNotification() *dto.MidtransNotification {
	return &dto.MidtransNotification{
		OrderID:           "RYLS0001",
		StatusCode:        "200",
		GrossAmount:       "225000.00",
		TransactionStatus: "settlement",
		SignatureKey:      testSignature,
	}
}

func TestVerifierSignature(t *testing.T) {
	v := NewWebhookVerifier(func() string { return testServerKey })

	got := v.Signature("RYLS0001", "200", "225000.00")
	assert.Equal(t, testSignature, got)

	// Gross amount ikut masuk ke hash persis seperti string aslinya.
	assert.NotEqual(t, got, v.Signature("RYLS0001", "200", "225000"))
}

func TestVerifierVerify(t *testing.T) {
	v := NewWebhookVerifier(func() string { return testServerKey })

	require.NoError(t, v.Verify(testNotification()))

	// Signature uppercase dari gateway tetap diterima.
	upper := testNotification()
	upper.SignatureKey = "32313FE194C028E17D5C164B627EA1D3EE9288814B061A5859CB9E4250D2BB970B6DA024CA2F0024B49F72CDD207B1CAB0400939D1C7EAB40B73B999A5788309"
	require.NoError(t, v.Verify(upper))
}

func TestVerifierRejectsWrongKey(t *testing.T) {
	v := NewWebhookVerifier(func() string { return "SB-Mid-server-wrongkey" })

	err := v.Verify(testNotification())
	require.Error(t, err)
	assert.Equal(t, KindSignature, KindOf(err))
}

func TestVerifierRejectsTamperedAmount(t *testing.T) {
	v := NewWebhookVerifier(func() string { return testServerKey })

	n := testNotification()
	n.GrossAmount = "1.00"
	err := v.Verify(n)
	require.Error(t, err)
	assert.Equal(t, KindSignature, KindOf(err))
}

func TestVerifierRejectsMissingFields(t *testing.T) {
	v := NewWebhookVerifier(func() string { return testServerKey })

	for name, mutate := range map[string]func(*dto.MidtransNotification){
		"order_id":           func(n *dto.MidtransNotification) { n.OrderID = "" },
		"transaction_status": func(n *dto.MidtransNotification) { n.TransactionStatus = " " },
		"signature_key":      func(n *dto.MidtransNotification) { n.SignatureKey = "" },
	} {
		n := testNotification()
		mutate(n)
		err := v.Verify(n)
		require.Error(t, err, name)
		assert.Equal(t, KindValidation, KindOf(err), name)
	}
}
