package domain

// DashboardStats aggregate figures for the office dashboard
type DashboardStats struct {
	TotalClients         int64 `json:"total_clients"`
	NewClientsLast30Days int64 `json:"new_clients_last_30_days"`
	ActiveProcesses      int64 `json:"active_processes"`
	ArchivedProcesses    int64 `json:"archived_processes"`
	ReceivableCents      int64 `json:"receivable_cents"`
	PayableCents         int64 `json:"payable_cents"`
}
