package projection

import "encoding/json"

// DecodeEvent turns a raw (type tag, payload) pair into its typed event.
// Unknown tags return ok=false with no error so the caller can skip/log
// without aborting the stream; malformed payloads return a DecodeError.
// Decoding never touches storage.
func DecodeEvent(typeTag string, payload []byte) (evt DomainEvent, ok bool, err error) {
	switch typeTag {
	case TypeTransactionAuthorised:
		var e TransactionAuthorisedEvent
		return decodeInto(typeTag, payload, &e)
	case TypeTransactionDeclined:
		var e TransactionDeclinedEvent
		return decodeInto(typeTag, payload, &e)
	case TypeTransactionCompleted:
		var e TransactionCompletedEvent
		return decodeInto(typeTag, payload, &e)
	case TypeSettlementCreatedForDate:
		var e SettlementCreatedForDateEvent
		return decodeInto(typeTag, payload, &e)
	case TypeMerchantFeeAddedPendingSettlement:
		var e MerchantFeeAddedPendingSettlementEvent
		return decodeInto(typeTag, payload, &e)
	case TypeMerchantFeeAddedToTransaction:
		var e MerchantFeeAddedToTransactionEvent
		return decodeInto(typeTag, payload, &e)
	case TypeMerchantFeeSettled:
		var e MerchantFeeSettledEvent
		return decodeInto(typeTag, payload, &e)
	case TypeSettlementCompleted:
		var e SettlementCompletedEvent
		return decodeInto(typeTag, payload, &e)
	case TypeMerchantBalanceChanged:
		var e MerchantBalanceChangedEvent
		return decodeInto(typeTag, payload, &e)
	case TypeImportLogCreated:
		var e ImportLogCreatedEvent
		return decodeInto(typeTag, payload, &e)
	case TypeFileCreated:
		var e FileCreatedEvent
		return decodeInto(typeTag, payload, &e)
	case TypeFileLineAdded:
		var e FileLineAddedEvent
		return decodeInto(typeTag, payload, &e)
	default:
		return nil, false, nil
	}
}

func decodeInto(typeTag string, payload []byte, target DomainEvent) (DomainEvent, bool, error) {
	if err := json.Unmarshal(payload, target); err != nil {
		return nil, false, &DecodeError{EventType: typeTag, Err: err}
	}
	return target, true, nil
}
