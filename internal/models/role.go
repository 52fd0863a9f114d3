package models

// Role - роль вызывающей стороны, определяется по API-ключу
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleWorker Role = "worker"
	RoleCamera Role = "camera"
)

// Decision - решение аудитора по завершенному инциденту
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)
