// Package camtparser extracts uniform statement records from ISO 20022
// CAMT.053 bank statement XML. Structural parsing is delegated to
// encoding/xml; a cheap xmlpath probe decides whether content is CAMT at all.
package camtparser

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	xmlpath "gopkg.in/xmlpath.v2"

	"fjacquet/bank-import/internal/logging"
	"fjacquet/bank-import/internal/models"
	"fjacquet/bank-import/internal/parsererror"
	"fjacquet/bank-import/internal/xmlutils"
)

// statementPath matches the CAMT.053 bank-to-customer statement container.
var statementPath = xmlpath.MustCompile("//BkToCstmrStmt")

// Parser extracts statements from CAMT.053 documents.
type Parser struct {
	logger logging.Logger
}

// New creates a CAMT.053 statement parser. A nil logger gets a default.
func New(logger logging.Logger) *Parser {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Parser{logger: logger}
}

// Sniff reports whether content looks like a CAMT.053 document by probing for
// the BkToCstmrStmt element.
func Sniff(content []byte) bool {
	if !bytes.Contains(content, []byte("<")) {
		return false
	}
	root, err := xmlutils.ParseBytes(content)
	if err != nil {
		return false
	}
	return statementPath.Exists(root)
}

// Extract parses a CAMT.053 document and maps each contained statement into
// the uniform statement record. Structural failures return a typed
// StatementError; a well-formed document without statements is a distinct
// failure.
func (p *Parser) Extract(content []byte) ([]models.Statement, error) {
	var document models.CAMT053Document
	if err := xml.Unmarshal(content, &document); err != nil {
		return nil, &parsererror.StatementError{
			Msg:     "failed to parse CAMT.053 document",
			Details: []string{err.Error()},
		}
	}

	stmts := document.BkToCstmrStmt.Stmt
	if len(stmts) == 0 {
		return nil, &parsererror.StatementError{
			Msg: "no statements found in CAMT.053 document",
		}
	}

	statements := make([]models.Statement, 0, len(stmts))
	for i := range stmts {
		statements = append(statements, p.statement(&stmts[i]))
	}

	p.logger.Info("Extracted statements from CAMT.053 document",
		logging.Field{Key: logging.FieldCount, Value: len(statements)})
	return statements, nil
}

func (p *Parser) statement(src *models.CAMT053Statement) models.Statement {
	out := models.Statement{
		AccountID:   accountID(src),
		AccountType: models.AccountTypeBank,
		Currency:    statementCurrency(src),
	}

	if src.FrToDt != nil {
		out.StartDate = parseISODateTime(src.FrToDt.FrDtTm)
		out.EndDate = parseISODateTime(src.FrToDt.ToDtTm)
	}

	if bal := closingBalance(src.Bal); bal != nil {
		amount, err := decimal.NewFromString(strings.TrimSpace(bal.Amt.Value))
		if err == nil {
			if bal.CdtDbtInd == "DBIT" {
				amount = amount.Neg()
			}
			out.Balance = amount
			out.BalanceDate = parseISODateTime(bal.Dt.Dt)
		}
	}

	out.Transactions = make([]models.StatementTransaction, 0, len(src.Ntry))
	for i := range src.Ntry {
		txn, err := p.entry(&src.Ntry[i], src.ID, i)
		if err != nil {
			p.logger.WithError(err).Warn("Skipping statement entry",
				logging.Field{Key: logging.FieldStatementID, Value: src.ID},
				logging.Field{Key: logging.FieldRowIndex, Value: i})
			out.Skipped = append(out.Skipped, models.SkippedEntry{
				Index:   i,
				Raw:     []string{strings.TrimSpace(src.Ntry[i].Amt.Value)},
				Message: err.Error(),
			})
			continue
		}
		out.Transactions = append(out.Transactions, txn)
	}
	return out
}

// entry maps one statement entry to a transaction. An entry without a
// parseable amount is reported back as an error; the caller records the skip
// on the statement rather than aborting it.
func (p *Parser) entry(entry *models.CAMT053Entry, stmtID string, index int) (models.StatementTransaction, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(entry.Amt.Value))
	if err != nil {
		return models.StatementTransaction{}, fmt.Errorf("missing or unparseable amount '%s'", strings.TrimSpace(entry.Amt.Value))
	}
	if entry.CdtDbtInd == "DBIT" {
		amount = amount.Neg()
	}

	txnType := "CREDIT"
	if entry.CdtDbtInd == "DBIT" {
		txnType = "DEBIT"
	}

	return models.StatementTransaction{
		ID:        entryID(entry, stmtID, index),
		Type:      txnType,
		Posted:    parseISODateTime(entry.BookgDt.Dt),
		Amount:    amount,
		Name:      entryName(entry),
		Memo:      entryMemo(entry),
		RefNumber: entry.AcctSvcrRef,
	}, nil
}

func accountID(src *models.CAMT053Statement) string {
	if src.Acct.ID.IBAN != "" {
		return src.Acct.ID.IBAN
	}
	if src.Acct.ID.Othr.ID != "" {
		return src.Acct.ID.Othr.ID
	}
	return src.ID
}

// statementCurrency prefers the account's declared currency, then the first
// entry's amount currency, then the fallback.
func statementCurrency(src *models.CAMT053Statement) string {
	if src.Acct.Ccy != "" {
		return strings.ToUpper(src.Acct.Ccy)
	}
	for i := range src.Ntry {
		if ccy := src.Ntry[i].Amt.Ccy; ccy != "" {
			return strings.ToUpper(ccy)
		}
	}
	return models.DefaultCurrency
}

// closingBalance picks the CLBD balance if present, else the last one.
func closingBalance(balances []models.CAMT053Balance) *models.CAMT053Balance {
	if len(balances) == 0 {
		return nil
	}
	for i := range balances {
		if balances[i].Tp.CdOrPrtry.Cd == "CLBD" {
			return &balances[i]
		}
	}
	return &balances[len(balances)-1]
}

func entryID(entry *models.CAMT053Entry, stmtID string, index int) string {
	for _, details := range entry.NtryDtls.TxDtls {
		if details.Refs.TxID != "" {
			return details.Refs.TxID
		}
		if details.Refs.EndToEndID != "" && details.Refs.EndToEndID != "NOTPROVIDED" {
			return details.Refs.EndToEndID
		}
	}
	if entry.NtryRef != "" {
		return entry.NtryRef
	}
	if entry.AcctSvcrRef != "" {
		return entry.AcctSvcrRef
	}
	return fmt.Sprintf("%s-%d-%s", strings.TrimSpace(stmtID), time.Now().UnixMilli(), uuid.NewString()[:8])
}

// entryName builds a display name from remittance info, related parties, or
// the additional entry information, in that order.
func entryName(entry *models.CAMT053Entry) string {
	for _, details := range entry.NtryDtls.TxDtls {
		for _, ustrd := range details.RmtInf.Ustrd {
			if s := xmlutils.CleanText(ustrd); s != "" {
				return s
			}
		}
		if entry.CdtDbtInd == "DBIT" && details.RltdPties.Cdtr.Nm != "" {
			return details.RltdPties.Cdtr.Nm
		}
		if entry.CdtDbtInd == "CRDT" && details.RltdPties.Dbtr.Nm != "" {
			return details.RltdPties.Dbtr.Nm
		}
	}
	return strings.TrimSpace(entry.AddtlNtryInf)
}

func entryMemo(entry *models.CAMT053Entry) string {
	name := entryName(entry)
	if info := strings.TrimSpace(entry.AddtlNtryInf); info != "" && info != name {
		return info
	}
	return ""
}

// parseISODateTime accepts both date-only and full timestamp forms.
func parseISODateTime(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}

