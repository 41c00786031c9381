package msgcat

// Database operations (20001-20099).
var (
	SuccessOnGet    = register(20001, "data fetched successfully", CategorySuccess)
	SuccessOnCreate = register(20002, "data inserted successfully", CategorySuccess)
	SuccessOnUpdate = register(20003, "data updated successfully", CategorySuccess)
	SuccessOnDelete = register(20004, "data deleted successfully", CategorySuccess)
)

// Authentication and authorization (20100-20199).
var (
	LoginSuccess    = register(20101, "logged in successfully", CategorySuccess)
	LogoutSuccess   = register(20102, "logged out successfully", CategorySuccess)
	AccountCreated  = register(20103, "account created successfully", CategorySuccess)
	PasswordUpdated = register(20104, "password updated successfully", CategorySuccess)
)

// File operations (20200-20299).
var (
	FileUploaded  = register(20201, "file uploaded successfully", CategorySuccess)
	FileDeleted   = register(20202, "file deleted successfully", CategorySuccess)
	FileProcessed = register(20203, "file processed successfully", CategorySuccess)
)

// General operations (20300-20399).
var (
	OperationSuccess = register(20301, "operation completed successfully", CategorySuccess)
	DataSaved        = register(20302, "data saved successfully", CategorySuccess)
	DataSent         = register(20303, "data sent successfully", CategorySuccess)
)
