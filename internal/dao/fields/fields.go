package fields

const (
	FieldObjectId  = "_id"
	FieldCreatedAt = "created_at"
	FieldUpdatedAt = "updated_at"
	FieldUpdatedBy = "updated_by"
	FieldStatus    = "status"
	FieldVersion   = "version"

	FieldBillMemberID       = "member_id"
	FieldBillProfile        = "profile"
	FieldBillActive         = "active"
	FieldBillPaymentHistory = "payment_history"
	FieldBillRenewalHistory = "renewal_history"
	FieldBillBalanceHistory = "balance_history"
	FieldBillPicture        = "profile_picture"
	FieldBillHasPicture     = "has_picture"

	FieldCounterSeq = "seq"

	FieldFollowupClientRef = "client_ref"
)
