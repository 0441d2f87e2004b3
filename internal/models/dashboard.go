package models

type TrendPoint struct {
	Date        string `json:"date"` // YYYY-MM-DD, UTC
	Enrollments int    `json:"enrollments"`
}

type CourseSales struct {
	CourseID uint    `json:"course_id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Sales    int     `json:"sales"`
	Revenue  float64 `json:"revenue"`
}

type DashboardStats struct {
	TotalRevenue     float64       `json:"total_revenue"`
	TotalSales       int           `json:"total_sales"`
	TotalEnrollments int           `json:"total_enrollments"`
	TotalCourses     int           `json:"total_courses"`
	CompletionRate   float64       `json:"completion_rate"`
	EnrollmentTrend  []TrendPoint  `json:"enrollment_trend"`
	Courses          []CourseSales `json:"courses"`
}
