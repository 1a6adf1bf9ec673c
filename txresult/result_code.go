package txresult

import "fmt"

// ResultCode is the transaction-level outcome reported by the network.
type ResultCode int32

const (
	ResultCodeSuccess             ResultCode = 0   // all operations succeeded
	ResultCodeFailed              ResultCode = -1  // one or more operations failed
	ResultCodeTooEarly            ResultCode = -2  // ledger close time before min time bound
	ResultCodeTooLate             ResultCode = -3  // ledger close time after max time bound
	ResultCodeMissingOperation    ResultCode = -4  // no operations specified
	ResultCodeBadSeq              ResultCode = -5  // sequence number does not match source account
	ResultCodeBadAuth             ResultCode = -6  // too few valid signatures or wrong network
	ResultCodeInsufficientBalance ResultCode = -7  // fee would bring account below reserve
	ResultCodeNoAccount           ResultCode = -8  // source account not found
	ResultCodeInsufficientFee     ResultCode = -9  // fee is too small
	ResultCodeBadAuthExtra        ResultCode = -10 // unused signatures attached
	ResultCodeInternalError       ResultCode = -11 // unknown error
)

var resultCodeNames = map[ResultCode]string{
	ResultCodeSuccess:             "success",
	ResultCodeFailed:              "failed",
	ResultCodeTooEarly:            "too_early",
	ResultCodeTooLate:             "too_late",
	ResultCodeMissingOperation:    "missing_operation",
	ResultCodeBadSeq:              "bad_seq",
	ResultCodeBadAuth:             "bad_auth",
	ResultCodeInsufficientBalance: "insufficient_balance",
	ResultCodeNoAccount:           "no_account",
	ResultCodeInsufficientFee:     "insufficient_fee",
	ResultCodeBadAuthExtra:        "bad_auth_extra",
	ResultCodeInternalError:       "internal_error",
}

// ResultCodes returns every defined result code, in tag order.
func ResultCodes() []ResultCode {
	codes := make([]ResultCode, 0, len(resultCodeNames))
	for c := ResultCodeSuccess; c >= ResultCodeInternalError; c-- {
		codes = append(codes, c)
	}
	return codes
}

func (c ResultCode) Valid() bool {
	_, ok := resultCodeNames[c]
	return ok
}

func (c ResultCode) String() string {
	if name, ok := resultCodeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ResultCode(%d)", int32(c))
}

func (c ResultCode) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, &UnknownResultCodeError{Tag: int32(c)}
	}
	return []byte(c.String()), nil
}

// ExecutesOperations reports whether the network applied the operations for
// this code, in which case the operation results follow on the wire.
func (c ResultCode) ExecutesOperations() bool {
	return c == ResultCodeSuccess || c == ResultCodeFailed
}

func resultCodeFromTag(tag int32) (ResultCode, error) {
	code := ResultCode(tag)
	if !code.Valid() {
		return 0, &UnknownResultCodeError{Tag: tag}
	}
	return code, nil
}
