package ofx

import (
	"context"
	"strings"
	"testing"

	"github.com/aclindsa/ofxgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patrio-app/patrio/internal/model"
)

const sampleBankOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20260215120000
<LANGUAGE>SPA
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>EUR
<BANKACCTFROM>
<BANKID>0049
<ACCTID>ES7600491234567890
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20260201
<DTEND>20260228
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20260203
<TRNAMT>-45.20
<FITID>TX2026001
<NAME>COMPRA TARJETA MERCADONA VALENCIA
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20260205
<TRNAMT>1850.00
<FITID>TX2026002
<NAME>NOMINA ACME CONSULTING SL
</STMTTRN>
<STMTTRN>
<TRNTYPE>ATM
<DTPOSTED>20260210
<TRNAMT>-100.00
<FITID>TX2026003
<NAME>PAGO
<MEMO>CAJERO PLAZA MAYOR
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1704.80
<DTASOF>20260228
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

const sampleCreditCardOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>Info
</STATUS>
<DTSERVER>20260215120000
<LANGUAGE>SPA
</SONRS>
</SIGNONMSGSRSV1>
<CREDITCARDMSGSRSV1>
<CCSTMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<CCSTMTRS>
<CURDEF>EUR
<CCACCTFROM>
<ACCTID>4940XXXXXXXX1234
</CCACCTFROM>
<BANKTRANLIST>
<DTSTART>20260201
<DTEND>20260228
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20260207
<TRNAMT>-12.90
<FITID>CC2026001
<NAME>PAGO EN FARMACIA CENTRAL
</STMTTRN>
<STMTTRN>
<TRNTYPE>FEE
<DTPOSTED>20260214
<TRNAMT>-3.50
<FITID>CC2026002
<NAME>COMISION MANTENIMIENTO
</STMTTRN>
</BANKTRANLIST>
</CCSTMTRS>
</CCSTMTTRNRS>
</CREDITCARDMSGSRSV1>
</OFX>`

func TestParseFileBankStatement(t *testing.T) {
	parser := NewParser()

	expenses, err := parser.ParseFile(context.Background(), strings.NewReader(sampleBankOFX))
	require.NoError(t, err)

	// The salary credit is skipped, only the two debits come through.
	require.Len(t, expenses, 2)

	first := expenses[0]
	assert.Equal(t, "TX2026001", first.ID)
	assert.Equal(t, model.KindCotidiano, first.Kind)
	assert.Equal(t, "COMPRA TARJETA MERCADONA VALENCIA", first.Name)
	assert.Equal(t, "MERCADONA VALENCIA", first.Provider.Name)
	assert.Equal(t, 45.20, first.Amount)
	assert.Equal(t, "EUR", first.Currency)
	assert.True(t, first.Paid)
	assert.True(t, first.Active)
	require.True(t, first.Date.Valid)
	assert.Equal(t, "2026-02-03", first.Date.Raw)

	atm := expenses[1]
	assert.Equal(t, 100.0, atm.Amount)
	assert.Equal(t, "efectivo", atm.Category)
	// NAME was generic, so the merchant comes from MEMO.
	assert.Equal(t, "CAJERO PLAZA MAYOR", atm.Provider.Name)
}

func TestParseFileCreditCardStatement(t *testing.T) {
	parser := NewParser()

	expenses, err := parser.ParseFile(context.Background(), strings.NewReader(sampleCreditCardOFX))
	require.NoError(t, err)
	require.Len(t, expenses, 2)

	assert.Equal(t, "FARMACIA CENTRAL", expenses[0].Provider.Name)
	assert.Equal(t, 12.90, expenses[0].Amount)

	assert.Equal(t, "comisiones", expenses[1].Category)
	assert.Equal(t, 3.50, expenses[1].Amount)
}

func TestParseFileInvalidContent(t *testing.T) {
	parser := NewParser()

	_, err := parser.ParseFile(context.Background(), strings.NewReader("this is not an OFX file"))
	assert.Error(t, err)
}

func TestExtractMerchantName(t *testing.T) {
	parser := NewParser()

	tests := []struct {
		name     string
		txName   string
		txMemo   string
		expected string
	}{
		{
			name:     "card purchase prefix stripped",
			txName:   "COMPRA TARJETA MERCADONA VALENCIA",
			expected: "MERCADONA VALENCIA",
		},
		{
			name:     "mobile payment prefix stripped",
			txName:   "PAGO MOVIL EN BAR LA PLAZA",
			expected: "BAR LA PLAZA",
		},
		{
			name:     "direct debit prefix stripped",
			txName:   "RECIBO DE IBERDROLA CLIENTES",
			expected: "IBERDROLA CLIENTES",
		},
		{
			name:     "leading date stamp removed",
			txName:   "03/02 REPSOL GASOLINERA",
			expected: "REPSOL GASOLINERA",
		},
		{
			name:     "generic name falls back to memo",
			txName:   "PAGO",
			txMemo:   "FARMACIA CENTRAL",
			expected: "FARMACIA CENTRAL",
		},
		{
			name:     "plain name passes through",
			txName:   "AMAZON ES",
			expected: "AMAZON ES",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := ofxgo.Transaction{
				Name: ofxgo.String(tt.txName),
				Memo: ofxgo.String(tt.txMemo),
			}
			assert.Equal(t, tt.expected, parser.extractMerchantName(tx))
		})
	}
}

func TestFingerprintDistinguishesCharges(t *testing.T) {
	parser := NewParser()

	expenses, err := parser.ParseFile(context.Background(), strings.NewReader(sampleBankOFX))
	require.NoError(t, err)
	require.Len(t, expenses, 2)

	// Distinct charges have distinct fingerprints.
	assert.NotEqual(t, expenses[0].Fingerprint(), expenses[1].Fingerprint())

	// Re-parsing the same file yields the same fingerprints.
	again, err := parser.ParseFile(context.Background(), strings.NewReader(sampleBankOFX))
	require.NoError(t, err)
	assert.Equal(t, expenses[0].Fingerprint(), again[0].Fingerprint())
}

func TestGetAccounts(t *testing.T) {
	parser := NewParser()

	accounts, err := parser.GetAccounts(context.Background(), strings.NewReader(sampleBankOFX))
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "ES7600491234567890", accounts[0])

	accounts, err = parser.GetAccounts(context.Background(), strings.NewReader(sampleCreditCardOFX))
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "4940XXXXXXXX1234", accounts[0])
}
