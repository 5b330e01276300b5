package services

// Services defined in this package:
// - AuthService: login, token refresh and profile lookup
// - WorkloadService: workload drafting, submission and review lifecycle
// - StaffService: admin-managed staff accounts and supervisor lookup
// - CourseService: admin-managed course catalog
// - ResearchStudentService: research student supervision records
