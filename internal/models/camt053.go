package models

import "encoding/xml"

// CAMT053Document is the subset of the ISO 20022 CAMT.053 schema the
// statement extractor consumes. The full grammar is not respecified here;
// encoding/xml acts as the structural parser behind the extraction boundary.
type CAMT053Document struct {
	XMLName       xml.Name `xml:"Document"`
	BkToCstmrStmt struct {
		Stmt []CAMT053Statement `xml:"Stmt"`
	} `xml:"BkToCstmrStmt"`
}

// CAMT053Statement represents one bank statement in the CAMT.053 format.
type CAMT053Statement struct {
	ID      string `xml:"Id"`
	CreDtTm string `xml:"CreDtTm"`
	FrToDt  *struct {
		FrDtTm string `xml:"FrDtTm"`
		ToDtTm string `xml:"ToDtTm"`
	} `xml:"FrToDt"`
	Acct struct {
		ID struct {
			IBAN string `xml:"IBAN"`
			Othr struct {
				ID string `xml:"Id"`
			} `xml:"Othr"`
		} `xml:"Id"`
		Ccy string `xml:"Ccy"`
	} `xml:"Acct"`
	Bal  []CAMT053Balance `xml:"Bal"`
	Ntry []CAMT053Entry   `xml:"Ntry"`
}

// CAMT053Balance represents a balance snapshot in the CAMT.053 format.
type CAMT053Balance struct {
	Tp struct {
		CdOrPrtry struct {
			Cd string `xml:"Cd"`
		} `xml:"CdOrPrtry"`
	} `xml:"Tp"`
	Amt       CAMT053Amount `xml:"Amt"`
	CdtDbtInd string        `xml:"CdtDbtInd"`
	Dt        struct {
		Dt string `xml:"Dt"`
	} `xml:"Dt"`
}

// CAMT053Amount represents a monetary amount with its currency attribute.
type CAMT053Amount struct {
	Value string `xml:",chardata"`
	Ccy   string `xml:"Ccy,attr"`
}

// CAMT053Entry represents one transaction entry in a CAMT.053 statement.
type CAMT053Entry struct {
	NtryRef      string        `xml:"NtryRef"`
	Amt          CAMT053Amount `xml:"Amt"`
	CdtDbtInd    string        `xml:"CdtDbtInd"` // CRDT or DBIT
	Sts          string        `xml:"Sts"`
	BookgDt      struct {
		Dt string `xml:"Dt"`
	} `xml:"BookgDt"`
	ValDt struct {
		Dt string `xml:"Dt"`
	} `xml:"ValDt"`
	AcctSvcrRef  string `xml:"AcctSvcrRef"`
	AddtlNtryInf string `xml:"AddtlNtryInf"`
	NtryDtls     struct {
		TxDtls []struct {
			Refs struct {
				EndToEndID string `xml:"EndToEndId"`
				TxID       string `xml:"TxId"`
			} `xml:"Refs"`
			RmtInf struct {
				Ustrd []string `xml:"Ustrd"`
			} `xml:"RmtInf"`
			RltdPties struct {
				Cdtr struct {
					Nm string `xml:"Nm"`
				} `xml:"Cdtr"`
				Dbtr struct {
					Nm string `xml:"Nm"`
				} `xml:"Dbtr"`
			} `xml:"RltdPties"`
		} `xml:"TxDtls"`
	} `xml:"NtryDtls"`
}
