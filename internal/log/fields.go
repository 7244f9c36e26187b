package log

// Common field names for structured logging.
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"

	FieldBillID      = "bill_id"
	FieldBillMonth   = "bill_month"
	FieldFamilyID    = "family_id"
	FieldFamilyName  = "family_name"
	FieldTotalCost   = "total_cost"
	FieldCostPerLine = "cost_per_line"
	FieldBillCount   = "bill_count"
	FieldRangeStart  = "range_start"
	FieldRangeEnd    = "range_end"
	FieldExportPath  = "export_path"
	FieldExportKind  = "export_kind"
)

// Components defines standard component names.
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentFamily  = "family"
	ComponentBill    = "bill"
	ComponentSummary = "summary"
	ComponentExport  = "export"
	ComponentStorage = "storage"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
	ComponentCache   = "cache"
)

// Operations defines standard operation names.
const (
	OpCreate    = "create"
	OpRead      = "read"
	OpUpdate    = "update"
	OpDelete    = "delete"
	OpList      = "list"
	OpAllocate  = "allocate"
	OpBatch     = "batch"
	OpAggregate = "aggregate"
	OpRender    = "render"
	OpPublish   = "publish"
	OpConsume   = "consume"
	OpStartup   = "startup"
	OpShutdown  = "shutdown"
)
