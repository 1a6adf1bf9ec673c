package txresult

import "fmt"

// OperationType identifies the kind of operation a result belongs to.
type OperationType int32

const (
	OperationTypeCreateAccount         OperationType = 0
	OperationTypePayment               OperationType = 1
	OperationTypePathPayment           OperationType = 2
	OperationTypeManageOffer           OperationType = 3
	OperationTypeCreatePassiveOffer    OperationType = 4
	OperationTypeSetOptions            OperationType = 5
	OperationTypeChangeTrust           OperationType = 6
	OperationTypeAllowTrust            OperationType = 7
	OperationTypeAccountMerge          OperationType = 8
	OperationTypeInflation             OperationType = 9
	OperationTypeManageData            OperationType = 10
	OperationTypeBumpSequence          OperationType = 11
	OperationTypeManageBuyOffer        OperationType = 12
	OperationTypePathPaymentStrictSend OperationType = 13
)

var operationTypeNames = map[OperationType]string{
	OperationTypeCreateAccount:         "create_account",
	OperationTypePayment:               "payment",
	OperationTypePathPayment:           "path_payment",
	OperationTypeManageOffer:           "manage_offer",
	OperationTypeCreatePassiveOffer:    "create_passive_offer",
	OperationTypeSetOptions:            "set_options",
	OperationTypeChangeTrust:           "change_trust",
	OperationTypeAllowTrust:            "allow_trust",
	OperationTypeAccountMerge:          "account_merge",
	OperationTypeInflation:             "inflation",
	OperationTypeManageData:            "manage_data",
	OperationTypeBumpSequence:          "bump_sequence",
	OperationTypeManageBuyOffer:        "manage_buy_offer",
	OperationTypePathPaymentStrictSend: "path_payment_strict_send",
}

// OperationTypes returns every known operation type, in tag order.
func OperationTypes() []OperationType {
	types := make([]OperationType, 0, len(operationTypeNames))
	for t := OperationTypeCreateAccount; t <= OperationTypePathPaymentStrictSend; t++ {
		types = append(types, t)
	}
	return types
}

func (t OperationType) String() string {
	if name, ok := operationTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("OperationType(%d)", int32(t))
}

func (t OperationType) MarshalText() ([]byte, error) {
	if _, ok := operationTypeNames[t]; !ok {
		return nil, &UnknownOperationTypeError{Tag: int32(t)}
	}
	return []byte(t.String()), nil
}
