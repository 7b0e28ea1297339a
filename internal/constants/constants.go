package constants

// User roles
const (
	RoleAdmin = "ADMIN"
	RoleStaff = "STAFF"
)

// Housing statuses recorded in destination outcomes
const (
	HousingStatusStreet       = "STREET"
	HousingStatusShelter      = "SHELTER"
	HousingStatusTransitional = "TRANSITIONAL"
	HousingStatusSRO          = "SRO"
	HousingStatusSoberLiving  = "SOBER_LIVING"
	HousingStatusILF          = "ILF"
	HousingStatusPermanent    = "PERMANENT"
	HousingStatusOther        = "OTHER"
)

// Employment statuses recorded in destination outcomes
const (
	EmploymentStatusNone     = "NONE"
	EmploymentStatusTraining = "TRAINING"
	EmploymentStatusPartTime = "PART_TIME"
	EmploymentStatusFullTime = "FULL_TIME"
)

// Homework list filters
const (
	HomeworkFilterPending   = "pending"
	HomeworkFilterOverdue   = "overdue"
	HomeworkFilterCompleted = "completed"
)

// HousingStatuses lists every accepted housing status value.
var HousingStatuses = []string{
	HousingStatusStreet,
	HousingStatusShelter,
	HousingStatusTransitional,
	HousingStatusSRO,
	HousingStatusSoberLiving,
	HousingStatusILF,
	HousingStatusPermanent,
	HousingStatusOther,
}

// HousedStatuses lists housing statuses counted as "housed" in reports.
var HousedStatuses = []string{
	HousingStatusTransitional,
	HousingStatusSRO,
	HousingStatusSoberLiving,
	HousingStatusILF,
	HousingStatusPermanent,
}

// EmploymentStatuses lists every accepted employment status value.
var EmploymentStatuses = []string{
	EmploymentStatusNone,
	EmploymentStatusTraining,
	EmploymentStatusPartTime,
	EmploymentStatusFullTime,
}
