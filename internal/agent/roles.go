package agent

// Role identifies which agent persona a call is made as.
type Role string

const (
	// RoleProductManager plans the delivery from the spec
	RoleProductManager Role = "product-manager"

	// RoleArchitect reviews the plan for structural soundness
	RoleArchitect Role = "architect"

	// RoleBestPractices reviews the plan against engineering conventions
	RoleBestPractices Role = "best-practices"

	// RoleTDD writes failing acceptance tests, then makes them pass
	RoleTDD Role = "tdd"

	// RoleReviewerArchitecture reviews an implementation's structure
	RoleReviewerArchitecture Role = "reviewer-architecture"

	// RoleReviewerSecurity reviews an implementation for security issues
	RoleReviewerSecurity Role = "reviewer-security"

	// RoleReviewerQA reviews an implementation's test quality
	RoleReviewerQA Role = "reviewer-qa"

	// RoleExternalReviewer synthesizes the independent reviews into one verdict
	RoleExternalReviewer Role = "external-reviewer"

	// RoleIntegrator assembles the delivered features
	RoleIntegrator Role = "integrator"

	// RoleClarifier asks bounded clarifying questions about the spec
	RoleClarifier Role = "clarifier"
)

// String returns the string representation
func (r Role) String() string {
	return string(r)
}

// ReviewerRoles are the three independent reviewers fanned out per
// feature iteration.
func ReviewerRoles() []Role {
	return []Role{RoleReviewerArchitecture, RoleReviewerSecurity, RoleReviewerQA}
}
