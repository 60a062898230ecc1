package dynamo

// DynamoDB attribute and index names shared by key builders, update
// expressions and Bootstrap.
const (
	fieldAccountID       = "account_id"
	fieldEmail           = "email"
	fieldGoogleSub       = "google_sub"
	fieldCollaborations  = "collaborations"
	fieldUpdatedAt       = "updated_at"
	fieldOpportunityID   = "opportunity_id"
	fieldOwnerID         = "owner_id"
	fieldApplicants      = "applicants"
	fieldCollaborationID = "collaboration_id"
	fieldCreatorID       = "creator_id"
	fieldRequests        = "requests"
	fieldPostedDate      = "posted_date"
	fieldIdentity        = "identity"
	fieldCode            = "code"
	fieldExpiresAt       = "expires_at"

	indexEmail         = "email-index"
	indexGoogleSub     = "google_sub-index"
	indexOwnerPosted   = "owner_id-posted_date-index"
	indexCreatorPosted = "creator_id-posted_date-index"
)
