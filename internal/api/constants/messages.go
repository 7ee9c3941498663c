package constants

// User-facing messages are bilingual (English / Simplified Chinese) and are
// returned verbatim by the handlers.
const (
	MsgMissingFields   = "Required fields are missing / 缺少必填字段"
	MsgInvalidName     = "Invalid name format / 姓名格式不正确"
	MsgInvalidEmail    = "Invalid email format / 邮箱格式不正确"
	MsgInvalidPhone    = "Invalid phone format / 电话格式不正确"
	MsgTooManyRequests = "Too many requests. Please try again in 1 hour. / 请求次数过多，请1小时后再试。"
	MsgSendFailed      = "Failed to send email / 发送邮件失败，请稍后重试"
	MsgRouteNotFound   = "Route not found / 路由未找到"
	MsgInternalError   = "Internal server error / 服务器内部错误"
)
