package msgcat

// Database operations (10001-10099).
var (
	FailOnGet    = register(10001, "an error occurred while fetching data, please try again later", CategoryDatabase)
	FailOnCreate = register(10002, "an error occurred while inserting data, please try again later", CategoryDatabase)
	FailOnUpdate = register(10003, "an error occurred while updating data, please try again later", CategoryDatabase)
	FailOnDelete = register(10004, "an error occurred while deleting data, please try again later", CategoryDatabase)
	NotFoundData = register(10005, "no data found", CategoryDatabase)
)

// Validation errors (10100-10199).
var (
	ExistOnCreate     = register(10101, "the entry already exists", CategoryValidation)
	NotExistOnCreate  = register(10102, "please check the input, no data found", CategoryValidation)
	NotExistOnUpdate  = register(10103, "please check the input, no data found", CategoryValidation)
	InvalidInputData  = register(10104, "the provided input is not valid", CategoryValidation)
	RequiredField     = register(10105, "the field is required", CategoryValidation)
	InvalidDataFormat = register(10106, "the data format is not valid", CategoryValidation)
	ExceededMaxLength = register(10107, "the allowed length was exceeded", CategoryValidation)
	OutOfRange        = register(10108, "the value is out of the allowed range", CategoryValidation)
)

// Business logic errors (10200-10299).
var (
	StatusNotFound          = register(10201, "the status is not defined", CategoryBusiness)
	InvalidStatusOperation  = register(10202, "the operation is not allowed in the current status", CategoryBusiness)
	BusinessRuleViolation   = register(10203, "the operation cannot be performed due to business constraints", CategoryBusiness)
	InsufficientPermissions = register(10204, "insufficient permissions to perform the operation", CategoryBusiness)
	DuplicateOperation      = register(10205, "duplicate operation, it was already performed", CategoryBusiness)
)

// Authentication and authorization (10300-10399).
var (
	AuthenticationFailed = register(10301, "identity verification failed", CategoryAuth)
	SessionExpired       = register(10302, "the session has expired", CategoryAuth)
	AccessDenied         = register(10303, "access denied", CategoryAuth)
	UserInactive         = register(10304, "the user is not active", CategoryAuth)
	UserBlocked          = register(10305, "the user account is blocked", CategoryAuth)
)

// External services (10400-10499).
var (
	ExternalServiceFailure   = register(10401, "failed to reach the external service", CategoryExternal)
	ServiceTimeout           = register(10402, "the connection timed out", CategoryExternal)
	ServiceUnavailable       = register(10403, "the service is currently unavailable", CategoryExternal)
	ResponseProcessingFailed = register(10404, "failed to process the response", CategoryExternal)
)

// File operations (10500-10599).
var (
	FileUploadFailed     = register(10501, "failed to upload the file", CategoryFile)
	UnsupportedFileType  = register(10502, "the file type is not supported", CategoryFile)
	FileSizeExceeded     = register(10503, "the file size exceeds the allowed limit", CategoryFile)
	FileNotFound         = register(10504, "the file does not exist", CategoryFile)
	FileProcessingFailed = register(10505, "failed to process the file", CategoryFile)
)

// System errors (10600-10699).
var (
	SystemError        = register(10601, "a system error occurred", CategorySystem)
	InsufficientMemory = register(10602, "insufficient memory", CategorySystem)
	DatabaseError      = register(10603, "a database error occurred", CategorySystem)
	NetworkError       = register(10604, "a network error occurred", CategorySystem)
	ServerBusy         = register(10605, "the server is currently busy", CategorySystem)
)
