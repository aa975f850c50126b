// Package ofxparser extracts uniform statement records from OFX/QFX
// documents. The OFX grammar itself is parsed by the ofxgo library; only the
// statement, account, balance, and transaction normalization is done here.
package ofxparser

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/aclindsa/ofxgo"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fjacquet/bank-import/internal/logging"
	"fjacquet/bank-import/internal/models"
	"fjacquet/bank-import/internal/parsererror"
)

// Parser extracts statements from OFX documents. It holds no per-document
// state beyond its logger, so one instance is safe for concurrent use over
// disjoint inputs.
type Parser struct {
	logger logging.Logger
}

// New creates an OFX statement parser. A nil logger gets a default.
func New(logger logging.Logger) *Parser {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Parser{logger: logger}
}

// Sniff reports whether content looks like an OFX document, based on the
// header markers of both the v1 SGML and v2 XML variants.
func Sniff(content []byte) bool {
	head := content
	if len(head) > 1024 {
		head = head[:1024]
	}
	upper := strings.ToUpper(string(head))
	return strings.Contains(upper, "OFXHEADER") ||
		strings.Contains(upper, "<?OFX") ||
		strings.Contains(upper, "<OFX>")
}

// Extract parses an OFX document and maps every bank and credit-card
// statement it contains into the uniform statement record. Structural
// failures come back as a typed StatementError, never a panic. A document
// that parses but contains no statements is a distinct "no statements found"
// failure. Cash transactions that exist in the document but belong to no
// recognized statement shape are collected into one synthesized generic
// statement so data is not silently dropped.
func (p *Parser) Extract(content []byte) ([]models.Statement, error) {
	resp, err := ofxgo.ParseResponse(bytes.NewReader(content))
	if err != nil {
		return nil, &parsererror.StatementError{
			Msg:     "failed to parse OFX document",
			Details: []string{err.Error()},
		}
	}

	var statements []models.Statement
	var details []string

	for i, msg := range resp.Bank {
		stmt, ok := msg.(*ofxgo.StatementResponse)
		if !ok {
			details = append(details, fmt.Sprintf("bank message %d has unexpected type %T", i, msg))
			continue
		}
		statements = append(statements, p.bankStatement(stmt))
	}

	for i, msg := range resp.CreditCard {
		stmt, ok := msg.(*ofxgo.CCStatementResponse)
		if !ok {
			details = append(details, fmt.Sprintf("credit card message %d has unexpected type %T", i, msg))
			continue
		}
		statements = append(statements, p.creditCardStatement(stmt))
	}

	if len(statements) == 0 {
		if orphans := p.orphanTransactions(resp); len(orphans) > 0 {
			p.logger.Warn("No recognized statements, synthesizing a generic one",
				logging.Field{Key: logging.FieldCount, Value: len(orphans)})
			statements = append(statements, models.Statement{
				AccountID:    syntheticID("account"),
				AccountType:  models.AccountTypeBank,
				Currency:     models.DefaultCurrency,
				Transactions: orphans,
			})
		}
	}

	if len(statements) == 0 {
		return nil, &parsererror.StatementError{
			Msg:     "no statements found in OFX document",
			Details: details,
		}
	}

	p.logger.Info("Extracted statements from OFX document",
		logging.Field{Key: logging.FieldCount, Value: len(statements)})
	return statements, nil
}

func (p *Parser) bankStatement(stmt *ofxgo.StatementResponse) models.Statement {
	out := models.Statement{
		AccountID:   stmt.BankAcctFrom.AcctID.String(),
		AccountType: models.AccountTypeBank,
		Currency:    currencyOrDefault(stmt.CurDef.String()),
		Balance:     amountToDecimal(stmt.BalAmt),
		BalanceDate: stmt.DtAsOf.Time,
	}
	if stmt.BankTranList != nil {
		out.StartDate = stmt.BankTranList.DtStart.Time
		out.EndDate = stmt.BankTranList.DtEnd.Time
		out.Transactions = p.transactions(stmt.BankTranList.Transactions)
	}
	return out
}

func (p *Parser) creditCardStatement(stmt *ofxgo.CCStatementResponse) models.Statement {
	out := models.Statement{
		AccountID:   stmt.CCAcctFrom.AcctID.String(),
		AccountType: models.AccountTypeCreditCard,
		Currency:    currencyOrDefault(stmt.CurDef.String()),
		Balance:     amountToDecimal(stmt.BalAmt),
		BalanceDate: stmt.DtAsOf.Time,
	}
	if stmt.BankTranList != nil {
		out.StartDate = stmt.BankTranList.DtStart.Time
		out.EndDate = stmt.BankTranList.DtEnd.Time
		out.Transactions = p.transactions(stmt.BankTranList.Transactions)
	}
	return out
}

// orphanTransactions harvests cash movements from statement shapes the
// pipeline does not model (currently investment statements), so the fallback
// statement can carry them.
func (p *Parser) orphanTransactions(resp *ofxgo.Response) []models.StatementTransaction {
	var orphans []models.StatementTransaction
	for _, msg := range resp.InvStmt {
		invStmt, ok := msg.(*ofxgo.InvStatementResponse)
		if !ok || invStmt.InvTranList == nil {
			continue
		}
		for _, bankTxns := range invStmt.InvTranList.BankTransactions {
			orphans = append(orphans, p.transactions(bankTxns.Transactions)...)
		}
	}
	return orphans
}

func (p *Parser) transactions(txns []ofxgo.Transaction) []models.StatementTransaction {
	out := make([]models.StatementTransaction, 0, len(txns))
	for i := range txns {
		out = append(out, p.transaction(&txns[i]))
	}
	return out
}

func (p *Parser) transaction(txn *ofxgo.Transaction) models.StatementTransaction {
	id := strings.TrimSpace(txn.FiTID.String())
	if id == "" {
		// Downstream duplicate/idempotency logic requires an identifier.
		id = syntheticID("txn")
		p.logger.Debug("Transaction has no FITID, synthesized one",
			logging.Field{Key: "id", Value: id})
	}

	return models.StatementTransaction{
		ID:          id,
		Type:        transactionType(txn),
		Posted:      txn.DtPosted.Time,
		Amount:      amountToDecimal(txn.TrnAmt),
		Name:        strings.TrimSpace(txn.Name.String()),
		Memo:        strings.TrimSpace(txn.Memo.String()),
		CheckNumber: strings.TrimSpace(txn.CheckNum.String()),
		RefNumber:   strings.TrimSpace(txn.RefNum.String()),
	}
}

// amountToDecimal converts the library's rational amount into an exact
// decimal. Going through big.Rat avoids any float64 round trip.
func amountToDecimal(amt ofxgo.Amount) decimal.Decimal {
	return decimal.NewFromBigRat(&amt.Rat, 8)
}

func currencyOrDefault(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || code == "XXX" {
		return models.DefaultCurrency
	}
	return code
}

// transactionType maps the OFX transaction type to a plain string.
func transactionType(txn *ofxgo.Transaction) string {
	switch txn.TrnType {
	case ofxgo.TrnTypeCredit:
		return "CREDIT"
	case ofxgo.TrnTypeDebit:
		return "DEBIT"
	case ofxgo.TrnTypeATM:
		return "ATM"
	case ofxgo.TrnTypeCheck:
		return "CHECK"
	case ofxgo.TrnTypeXfer:
		return "TRANSFER"
	case ofxgo.TrnTypeFee:
		return "FEE"
	case ofxgo.TrnTypePOS:
		return "POS"
	case ofxgo.TrnTypePayment:
		return "PAYMENT"
	case ofxgo.TrnTypeInt:
		return "INTEREST"
	case ofxgo.TrnTypeDep:
		return "DEPOSIT"
	default:
		return "OTHER"
	}
}

func syntheticID(prefix string) string {
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(), uuid.NewString()[:8])
}
