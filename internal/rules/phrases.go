package rules

// Canonical sentences emitted by the flag rules.
const (
	DeclarationSubmitted    = "submitted"
	DeclarationNotSubmitted = "NOT submitted"

	RevenueClientsYes = "Yes. The Business Plan contains information about target revenue and the targeted number of clients it plans to service, within 2 years of obtaining a certificate."
	RevenueClientsNo  = "No. The Business Plan DOES NOT contain information about target revenue and the targeted number of clients."

	BreakevenDateYes = "Yes. The Business Plan contains information about Target Breakeven Date."
	BreakevenDateNo  = "No. The Business Plan DOES NOT contain information about Target Breakeven Date."

	CashLossesYes = "Yes. The Business Plan contains information about the cumulative cash losses that the applicant projects to incur until the targeted breakeven date, along with the activities or areas in which such losses shall be incurred."
	CashLossesNo  = "No. The Business Plan DOES NOT contain the required information on projected cumulative losses."

	BusinessPlanMissing = "The Applicant has not submitted a summary of its Business Plan."
)

// Infrastructure phrases and the undertaking prefixes placed before them.
const (
	RemoteInfrastructure  = "necessary infrastructure including technology, equipment and manpower, to enable it to provide ESG rating services."
	OfficeInfrastructure  = "necessary infrastructure including adequate office space, technology, equipment and manpower, to enable it to provide ESG rating services."
	UndertakingSubmitted  = "has submitted an undertaking that it has "
	UndertakingMissing    = "has NOT SUBMITTED an undertaking that it has "
	undertakingProvided   = "undertaking provided"
	remoteOperationMarker = "only remote"
)

// mdCeoRatingFormat takes the entity ("the MD", "MD & CEO", ...) and the names.
const mdCeoRatingFormat = "The Applicant has submitted that %s %s is/are not part of rating decisions by the ERP."
