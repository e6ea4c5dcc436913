package response

type DashboardStats struct {
	TotalExperts    int64 `json:"total_experts"`
	TotalBookings   int64 `json:"total_bookings"`
	TotalUsers      int64 `json:"total_users"`
	PendingBookings int64 `json:"pending_bookings"`
}

type DashboardResponse struct {
	Stats          DashboardStats    `json:"stats"`
	RecentBookings []BookingResponse `json:"recent_bookings"`
}
