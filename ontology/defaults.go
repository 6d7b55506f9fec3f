package ontology

import "fmt"

// Default returns a graph populated with the built-in ontology.
func Default() *Graph {
	g, err := New(DefaultDocument())
	if err != nil {
		panic(fmt.Sprintf("ontology: built-in document invalid: %v", err))
	}
	return g
}

// DefaultDocument returns the built-in ontology: six reviewer domains, six
// impact dimensions, five expertise levels, and five project types. It seeds
// the store on first run and is the baseline every deployment starts from.
func DefaultDocument() Document {
	return Document{
		Domains:          defaultDomains(),
		ImpactDimensions: defaultImpactDimensions(),
		ExpertiseLevels:  defaultExpertiseLevels(),
		ProjectTypes:     defaultProjectTypes(),
	}
}

func defaultDomains() []Domain {
	return []Domain{
		{
			ID:          "technical",
			Name:        "Technical",
			Description: "Expertise in programming, software engineering, hardware development, or technical implementation",
			Keywords:    []string{"programming", "software", "hardware", "development", "engineering", "technical", "code"},
			Subdomains: []Subdomain{
				{ID: "frontend", Name: "Frontend Development", Keywords: []string{"UI", "UX", "web", "mobile", "frontend"}},
				{ID: "backend", Name: "Backend Development", Keywords: []string{"server", "database", "API", "backend"}},
				{ID: "data_science", Name: "Data Science", Keywords: []string{"machine learning", "AI", "data", "analytics"}},
				{ID: "devops", Name: "DevOps", Keywords: []string{"deployment", "infrastructure", "cloud", "CI/CD"}},
			},
			RelevantDimensions: []string{"technical_feasibility", "implementation_complexity", "scalability", "innovation"},
		},
		{
			ID:          "clinical",
			Name:        "Clinical",
			Description: "Medical or healthcare expertise related to patient care, diagnosis, or treatment",
			Keywords:    []string{"medical", "healthcare", "clinical", "patient", "diagnosis", "treatment", "doctor", "nurse"},
			Subdomains: []Subdomain{
				{ID: "primary_care", Name: "Primary Care", Keywords: []string{"general practice", "family medicine"}},
				{ID: "specialty", Name: "Medical Specialties", Keywords: []string{"cardiology", "neurology", "oncology"}},
				{ID: "nursing", Name: "Nursing", Keywords: []string{"nurse", "patient care", "bedside"}},
				{ID: "emergency", Name: "Emergency Medicine", Keywords: []string{"emergency", "urgent care", "trauma"}},
			},
			RelevantDimensions: []string{"impact", "implementation_complexity", "technical_feasibility"},
		},
		{
			ID:          "administrative",
			Name:        "Administrative",
			Description: "Expertise in healthcare administration, policy, and management",
			Keywords:    []string{"administration", "management", "policy", "governance", "operations"},
			Subdomains: []Subdomain{
				{ID: "hospital_admin", Name: "Hospital Administration", Keywords: []string{"hospital", "facility", "operations"}},
				{ID: "health_policy", Name: "Health Policy", Keywords: []string{"policy", "regulation", "compliance"}},
				{ID: "operations", Name: "Healthcare Operations", Keywords: []string{"workflow", "process", "efficiency"}},
			},
			RelevantDimensions: []string{"implementation_complexity", "scalability", "return_on_investment"},
		},
		{
			ID:          "business",
			Name:        "Business",
			Description: "Expertise in business models, market analysis, and commercialization",
			Keywords:    []string{"business", "market", "commercialization", "monetization", "startup", "entrepreneur"},
			Subdomains: []Subdomain{
				{ID: "strategy", Name: "Business Strategy", Keywords: []string{"strategy", "planning", "vision"}},
				{ID: "finance", Name: "Finance", Keywords: []string{"funding", "investment", "revenue", "cost"}},
				{ID: "marketing", Name: "Marketing", Keywords: []string{"marketing", "branding", "growth"}},
				{ID: "entrepreneurship", Name: "Entrepreneurship", Keywords: []string{"startup", "venture", "founding"}},
			},
			RelevantDimensions: []string{"return_on_investment", "scalability", "impact"},
		},
		{
			ID:          "design",
			Name:        "Design",
			Description: "Expertise in user interface, user experience, and visual design",
			Keywords:    []string{"design", "UI", "UX", "visual", "graphic", "user interface", "user experience"},
			Subdomains: []Subdomain{
				{ID: "ui_design", Name: "UI Design", Keywords: []string{"interface", "visual", "graphic"}},
				{ID: "ux_design", Name: "UX Design", Keywords: []string{"experience", "interaction", "usability", "accessibility"}},
				{ID: "service_design", Name: "Service Design", Keywords: []string{"service", "journey", "touchpoint"}},
			},
			RelevantDimensions: []string{"innovation", "impact", "implementation_complexity"},
		},
		{
			ID:          "user_experience",
			Name:        "User Experience",
			Description: "Expertise in how users interact with products and services",
			Keywords:    []string{"user", "experience", "usability", "user testing", "user research", "human-computer interaction"},
			Subdomains: []Subdomain{
				{ID: "user_research", Name: "User Research", Keywords: []string{"research", "interviews", "surveys", "testing"}},
				{ID: "accessibility", Name: "Accessibility", Keywords: []string{"accessible", "inclusion", "disability"}},
				{ID: "behavior", Name: "User Behavior", Keywords: []string{"behavior", "psychology", "cognitive"}},
			},
			RelevantDimensions: []string{"impact", "implementation_complexity", "innovation"},
		},
	}
}

func defaultImpactDimensions() []ImpactDimension {
	return []ImpactDimension{
		{
			ID:          "technical_feasibility",
			Name:        "Technical Feasibility",
			Description: "How technically feasible is the project to implement",
			Scale: map[int]string{
				1: "Extremely difficult or impossible with current technology",
				2: "Substantial technical challenges",
				3: "Moderate technical challenges",
				4: "Few technical challenges",
				5: "Easily implementable with existing technology",
			},
		},
		{
			ID:          "innovation",
			Name:        "Innovation",
			Description: "How innovative or novel is the approach",
			Scale: map[int]string{
				1: "Not innovative, duplicates existing solutions",
				2: "Minor improvements to existing approaches",
				3: "Moderate innovation with some novel aspects",
				4: "Significantly innovative approach",
				5: "Groundbreaking, completely novel approach",
			},
		},
		{
			ID:          "impact",
			Name:        "Impact",
			Description: "Potential impact on the target problem or domain",
			Scale: map[int]string{
				1: "Minimal or no impact",
				2: "Limited impact",
				3: "Moderate impact",
				4: "Significant impact",
				5: "Transformative impact",
			},
		},
		{
			ID:          "implementation_complexity",
			Name:        "Implementation Complexity",
			Description: "Complexity of implementing the solution in practice",
			Scale: map[int]string{
				1: "Extremely complex implementation",
				2: "Highly complex implementation",
				3: "Moderately complex implementation",
				4: "Relatively simple implementation",
				5: "Very straightforward implementation",
			},
		},
		{
			ID:          "scalability",
			Name:        "Scalability",
			Description: "Ability to scale to wider implementation",
			Scale: map[int]string{
				1: "Not scalable beyond initial context",
				2: "Limited scalability",
				3: "Moderately scalable",
				4: "Highly scalable",
				5: "Extremely scalable with minimal effort",
			},
		},
		{
			ID:          "return_on_investment",
			Name:        "Return on Investment",
			Description: "Expected return relative to investment required",
			Scale: map[int]string{
				1: "Poor ROI, costs greatly exceed benefits",
				2: "Limited ROI, costs somewhat exceed benefits",
				3: "Moderate ROI, benefits roughly equal costs",
				4: "Good ROI, benefits exceed costs",
				5: "Excellent ROI, benefits greatly exceed costs",
			},
		},
	}
}

func defaultExpertiseLevels() []ExpertiseLevel {
	return []ExpertiseLevel{
		{ID: "beginner", Name: "Beginner", Description: "Basic understanding of the domain", ConfidenceRange: [2]int{0, 40}},
		{ID: "skilled", Name: "Skilled", Description: "Practical experience and good understanding of the domain", ConfidenceRange: [2]int{41, 70}},
		{ID: "talented", Name: "Talented", Description: "Deep understanding and significant experience in the domain", ConfidenceRange: [2]int{71, 85}},
		{ID: "seasoned", Name: "Seasoned", Description: "Extensive experience and comprehensive knowledge of the domain", ConfidenceRange: [2]int{86, 95}},
		{ID: "expert", Name: "Expert", Description: "Top-level expertise with mastery of the domain", ConfidenceRange: [2]int{96, 100}},
	}
}

func defaultProjectTypes() []ProjectType {
	return []ProjectType{
		{
			ID:          "software",
			Name:        "Software",
			Description: "Projects primarily focused on software solutions",
			Keywords:    []string{"app", "application", "software", "platform", "digital", "mobile", "web"},
		},
		{
			ID:          "hardware",
			Name:        "Hardware",
			Description: "Projects involving physical devices or hardware components",
			Keywords:    []string{"device", "hardware", "physical", "wearable", "sensor", "equipment"},
		},
		{
			ID:          "data",
			Name:        "Data",
			Description: "Projects centered around data collection, analysis, or visualization",
			Keywords:    []string{"data", "analytics", "visualization", "dashboard", "metrics", "statistics"},
		},
		{
			ID:          "process",
			Name:        "Process",
			Description: "Projects focused on improving workflows or processes",
			Keywords:    []string{"process", "workflow", "procedure", "protocol", "method", "system"},
		},
		{
			ID:          "service",
			Name:        "Service",
			Description: "Projects creating or improving service delivery",
			Keywords:    []string{"service", "delivery", "care", "support", "assistance", "help"},
		},
	}
}
