// Package ofx turns OFX/QFX bank and credit card statements into record drafts.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/Veraticus/pocket/internal/model"
	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"
)

// Draft is a statement debit ready to be validated and stored as a record.
type Draft struct {
	Amount      decimal.Decimal
	Description string
	Date        string // YYYY-MM-DD
	FITID       string
	Account     string
	Category    string // suggested from the transaction type, may be empty
}

// Parser implements OFX/QFX file parsing.
type Parser struct{}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	// Opening tags missing their closing bracket at end of line.
	tagFixRegex = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
	spaceRegex  = regexp.MustCompile(`\s+`)
)

// preprocessOFX fixes common formatting issues in OFX files.
func (p *Parser) preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)
	return tagFixRegex.ReplaceAllString(content, "$1>")
}

func (p *Parser) parse(reader io.Reader) (*ofxgo.Response, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}
	return resp, nil
}

// ParseFile parses an OFX/QFX file and returns one draft per debit.
// Credits, deposits and zero amounts are skipped.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) ([]Draft, error) {
	resp, err := p.parse(reader)
	if err != nil {
		return nil, err
	}

	var drafts []Draft
	var bankStmts, ccStmts, skipped int

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			if stmt.BankTranList == nil {
				continue
			}
			d, s := p.convertTransactions(stmt.BankTranList.Transactions, string(stmt.BankAcctFrom.AcctID))
			drafts = append(drafts, d...)
			skipped += s
		}
	}

	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			if stmt.BankTranList == nil {
				continue
			}
			d, s := p.convertTransactions(stmt.BankTranList.Transactions, string(stmt.CCAcctFrom.AcctID))
			drafts = append(drafts, d...)
			skipped += s
		}
	}

	slog.Debug("Parsed OFX file",
		"drafts", len(drafts),
		"skipped_credits", skipped,
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return drafts, nil
}

func (p *Parser) convertTransactions(txns []ofxgo.Transaction, account string) ([]Draft, int) {
	drafts := make([]Draft, 0, len(txns))
	skipped := 0
	for i := range txns {
		draft, ok := p.convertTransaction(&txns[i], account)
		if !ok {
			skipped++
			continue
		}
		drafts = append(drafts, draft)
	}
	return drafts, skipped
}

// convertTransaction converts a debit. OFX uses negative amounts for debits.
func (p *Parser) convertTransaction(tx *ofxgo.Transaction, account string) (Draft, bool) {
	amount, err := decimal.NewFromString(tx.TrnAmt.FloatString(2))
	if err != nil || !amount.IsNegative() {
		return Draft{}, false
	}

	description := p.extractDescription(*tx)
	if description == "" {
		description = tx.TrnType.String()
	}

	draft := Draft{
		Description: description,
		Amount:      amount.Neg(),
		Date:        tx.DtPosted.Format(model.DateLayout),
		FITID:       string(tx.FiTID),
		Account:     account,
	}

	switch tx.TrnType {
	case ofxgo.TrnTypeFee, ofxgo.TrnTypeSrvChg:
		draft.Category = "Fees"
	case ofxgo.TrnTypeATM, ofxgo.TrnTypeCash:
		draft.Category = "Other"
	}

	return draft, true
}

var purchasePrefixes = []string{
	"POS PURCHASE ",
	"PURCHASE AUTHORIZED ON ",
	"DEBIT CARD PURCHASE ",
	"ACH DEBIT ",
	"CHECK CARD ",
	"VISA PURCHASE ",
	"MC PURCHASE ",
	"DEBIT PURCHASE ",
}

var genericDescriptions = map[string]bool{
	"DEBIT":           true,
	"CREDIT":          true,
	"PURCHASE":        true,
	"PAYMENT":         true,
	"POS TRANSACTION": true,
	"CARD PURCHASE":   true,
}

// extractDescription builds a description that passes record validation:
// no surrounding whitespace and no immediately repeated word.
func (p *Parser) extractDescription(tx ofxgo.Transaction) string {
	var name string
	if tx.Payee != nil && tx.Payee.Name != "" {
		name = string(tx.Payee.Name)
	} else {
		name = string(tx.Name)
		if tx.Memo != "" && genericDescriptions[strings.ToUpper(strings.TrimSpace(name))] {
			name = string(tx.Memo)
		}
	}

	name = strings.TrimSpace(spaceRegex.ReplaceAllString(name, " "))

	for _, prefix := range purchasePrefixes {
		if strings.HasPrefix(strings.ToUpper(name), prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// Leading "MM/DD " posting dates.
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}

	return collapseRepeats(name)
}

// collapseRepeats drops a word that repeats the one before it, ignoring case.
func collapseRepeats(s string) string {
	words := strings.Fields(s)
	out := words[:0]
	for _, w := range words {
		if len(out) > 0 && strings.EqualFold(out[len(out)-1], w) {
			continue
		}
		out = append(out, w)
	}
	return strings.Join(out, " ")
}

// GetAccounts extracts unique account IDs from the OFX file, sorted.
func (p *Parser) GetAccounts(ctx context.Context, reader io.Reader) ([]string, error) {
	resp, err := p.parse(reader)
	if err != nil {
		return nil, err
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

	accounts := make([]string, 0, len(accountMap))
	for acct := range accountMap {
		accounts = append(accounts, acct)
	}
	sort.Strings(accounts)
	return accounts, nil
}
