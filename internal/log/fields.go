package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldSaleEvent  = "sale_event"
	FieldProduct    = "product"
	FieldQty        = "qty"
	FieldAmount     = "amount"
	FieldSheetsRef  = "sheets_ref"
	FieldBackend    = "backend"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentSales   = "sales"
	ComponentStorage = "storage"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
	ComponentSheets  = "sheets"
	ComponentBackend = "backend"
)

// Operations defines standard operation names
const (
	OpAppend   = "append"
	OpReadAll  = "read_all"
	OpSync     = "sync"
	OpValidate = "validate"
	OpRender   = "render"
	OpExport   = "export"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
