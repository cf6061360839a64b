// Package ofx turns bank OFX/QFX exports into everyday expense entries
// ready to be pushed to the backend.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"

	"github.com/patrio-app/patrio/internal/model"
)

// Parser reads OFX/QFX statements and extracts everyday expenses.
type Parser struct{}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

// preprocessOFX fixes common formatting issues in real-world OFX exports
// before handing them to the strict parser.
func (p *Parser) preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	// Mixed-case SEVERITY values (should be INFO, WARN, or ERROR).
	severityRegex := regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	content = severityRegex.ReplaceAllStringFunc(content, func(match string) string {
		return strings.ToUpper(match)
	})

	// SGML-style files sometimes drop the closing angle bracket on a tag
	// that ends the line.
	tagFixRegex := regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
	content = tagFixRegex.ReplaceAllString(content, "$1>")

	return content
}

// ParseFile parses an OFX/QFX file and returns the debit transactions as
// everyday expenses. Credits (deposits, refunds) are skipped: incomes are
// managed through their own endpoint, not imported from statements.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) ([]model.Expense, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var (
		expenses []model.Expense
		skipped  int
		stmts    int
	)

	for _, msg := range resp.Bank {
		stmt, ok := msg.(*ofxgo.StatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}
		stmts++
		for _, ofxTx := range stmt.BankTranList.Transactions {
			expense, ok := p.convertTransaction(ofxTx)
			if !ok {
				skipped++
				continue
			}
			expenses = append(expenses, expense)
		}
	}

	for _, msg := range resp.CreditCard {
		stmt, ok := msg.(*ofxgo.CCStatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}
		stmts++
		for _, ofxTx := range stmt.BankTranList.Transactions {
			expense, ok := p.convertTransaction(ofxTx)
			if !ok {
				skipped++
				continue
			}
			expenses = append(expenses, expense)
		}
	}

	slog.Info("Parsed OFX file",
		"expenses", len(expenses),
		"skipped_credits", skipped,
		"statements", stmts)

	return expenses, nil
}

// convertTransaction maps one OFX transaction to an everyday expense.
// Returns false for credits, which are not expenses.
func (p *Parser) convertTransaction(ofxTx ofxgo.Transaction) (model.Expense, bool) {
	amount, _ := ofxTx.TrnAmt.Float64()
	if amount >= 0 {
		return model.Expense{}, false
	}

	expense := model.Expense{
		ID:     string(ofxTx.FiTID),
		Kind:   model.KindCotidiano,
		Name:   strings.TrimSpace(string(ofxTx.Name)),
		Amount: -amount,
		Date:   model.DateOf(ofxTx.DtPosted.Time),
		Paid:   true,
		Active: true,
		Provider: model.Provider{
			Name: p.extractMerchantName(ofxTx),
		},
		Notes: strings.TrimSpace(string(ofxTx.Memo)),
	}

	// OFX carries no real categories, but the transaction type hints at
	// a few unambiguous ones.
	switch fmt.Sprintf("%v", ofxTx.TrnType) {
	case "FEE", "SRVCHG":
		expense.Category = "comisiones"
	case "ATM", "CASH":
		expense.Category = "efectivo"
	case "CHECK":
		expense.Category = "recibos"
	}

	expense.Normalize()
	return expense, true
}

// extractMerchantName pulls a usable provider name out of the OFX fields.
func (p *Parser) extractMerchantName(tx ofxgo.Transaction) string {
	// PAYEE, when present, is the cleanest source.
	if tx.Payee != nil && tx.Payee.Name != "" {
		return string(tx.Payee.Name)
	}

	name := string(tx.Name)

	// Some banks put the merchant in MEMO and leave NAME generic.
	if tx.Memo != "" && isGenericDescription(name) {
		name = string(tx.Memo)
	}

	name = strings.TrimSpace(name)

	// Strip the boilerplate Spanish banks prepend to card charges.
	prefixes := []string{
		"COMPRA TARJETA ",
		"COMPRA TARJ. ",
		"COMPRA EN ",
		"PAGO MOVIL EN ",
		"PAGO EN ",
		"RECIBO DE ",
		"RECIBO ",
		"ADEUDO ",
		"POS PURCHASE ",
		"DEBIT CARD PURCHASE ",
	}

	for _, prefix := range prefixes {
		if strings.HasPrefix(strings.ToUpper(name), prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// Drop a leading "DD/MM " date stamp.
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}

	return name
}

// isGenericDescription reports whether a transaction name carries no
// merchant information.
func isGenericDescription(name string) bool {
	generic := []string{
		"DEBIT",
		"CREDIT",
		"PURCHASE",
		"PAYMENT",
		"COMPRA",
		"PAGO",
		"POS TRANSACTION",
	}

	upperName := strings.ToUpper(name)
	for _, g := range generic {
		if upperName == g {
			return true
		}
	}
	return false
}

// GetAccounts extracts the unique account IDs present in an OFX file, so
// the import command can report where entries came from.
func (p *Parser) GetAccounts(ctx context.Context, reader io.Reader) ([]string, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	accountMap := make(map[string]bool)

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok && stmt.BankAcctFrom.AcctID != "" {
			accountMap[string(stmt.BankAcctFrom.AcctID)] = true
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok && stmt.CCAcctFrom.AcctID != "" {
			accountMap[string(stmt.CCAcctFrom.AcctID)] = true
		}
	}

	var accounts []string
	for acct := range accountMap {
		accounts = append(accounts, acct)
	}
	return accounts, nil
}
