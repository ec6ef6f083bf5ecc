package constants

// BillEvent names the business events emitted through the outbox.
type BillEvent string

const (
	BillEventCreated         BillEvent = "bill.created"
	BillEventUpdated         BillEvent = "bill.updated"
	BillEventRenewed         BillEvent = "bill.renewed"
	BillEventPaymentRecorded BillEvent = "bill.payment_recorded"
	BillEventDeleted         BillEvent = "bill.deleted"
)

// String returns the string representation of the BillEvent.
func (e BillEvent) String() string {
	return string(e)
}
