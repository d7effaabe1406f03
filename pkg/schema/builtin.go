package schema

// Closed enum sets for the built-in schemas. Membership is checked against
// these exact values; anything else is rejected.
var (
	QualificationLevels = []string{"High School", "Diploma", "Bachelor's Degree", "Master's Degree", "PhD"}
	IntakeSeasons       = []string{"Spring", "Summer", "Fall", "Winter"}
	BudgetRanges        = []string{"Under $10,000", "$10,000 - $20,000", "$20,000 - $35,000", "$35,000 - $50,000", "Above $50,000"}
	FundingSources      = []string{"Self-funded", "Family", "Education Loan", "Scholarship", "Employer"}
	EmploymentStatuses  = []string{"Employed", "Self-employed", "Unemployed", "Studying"}
	ScholarshipTypes    = []string{"Merit-based", "Need-based", "Athletic", "Research", "Government", "University"}
	DifficultyLevels    = []string{"Easy", "Medium", "Hard"}
	StudyLevels         = []string{"Undergraduate", "Postgraduate", "Doctoral", "Any"}
	FundingTypes        = []string{"Full", "Partial", "Tuition Only", "Living Expenses"}
)

// StudentProfile returns the built-in student profile schema: seven sections
// with seventeen required ("compulsory") fields between them.
func StudentProfile() EntitySchema {
	return EntitySchema{
		Kind: KindStudentProfile,
		Sections: []Section{
			{ID: "personal", Label: "Personal Information", Icon: "user", Fields: []string{
				"fullName", "emailAddress", "nationality", "dateOfBirth", "phoneNumber", "passportNumber", "address",
			}},
			{ID: "academic", Label: "Academic Background", Icon: "graduation-cap", Fields: []string{
				"highestQualification", "graduationYear", "highestGpa", "currentAcademicGap",
			}},
			{ID: "study", Label: "Study Preferences", Icon: "book-open", Fields: []string{
				"interestedCourse", "preferredIntake", "studyBudget",
			}},
			{ID: "budget", Label: "Financial Information", Icon: "wallet", Fields: []string{
				"budgetRange", "fundingSource", "loanApproval", "loanAmount",
			}},
			{ID: "countries", Label: "Preferred Countries", Icon: "globe", Fields: []string{
				"preferredCountries",
			}},
			{ID: "employment", Label: "Employment", Icon: "briefcase", Fields: []string{
				"currentEmploymentStatus", "jobTitle", "organizationName", "fieldOfWork", "workExperienceYears", "gapReasonIfAny",
			}},
			{ID: "tests", Label: "English Proficiency", Icon: "clipboard-check", Fields: []string{
				"englishProficiencyTests",
			}},
		},
		Fields: map[string]Field{
			"fullName":       {Type: FieldTypeString, Label: "Full Name", Required: true, Format: FormatPersonName, MinLength: intPtr(2), MaxLength: intPtr(100)},
			"emailAddress":   {Type: FieldTypeString, Label: "Email Address", Required: true, Format: FormatEmail, MaxLength: intPtr(254)},
			"nationality":    {Type: FieldTypeString, Label: "Nationality", Required: true, Format: FormatPersonName, MinLength: intPtr(2), MaxLength: intPtr(60)},
			"dateOfBirth":    {Type: FieldTypeString, Label: "Date of Birth", Required: true, Format: FormatDateOfBirth},
			"phoneNumber":    {Type: FieldTypeString, Label: "Phone Number", Required: true, Format: FormatPhone},
			"passportNumber": {Type: FieldTypeString, Label: "Passport Number", Required: true, Format: FormatPassport},
			"address":        {Type: FieldTypeString, Label: "Address", Required: true, MinLength: intPtr(10), MaxLength: intPtr(300), FreeText: true},

			"highestQualification": {Type: FieldTypeString, Label: "Highest Qualification", Required: true, Enum: QualificationLevels},
			"graduationYear":       {Type: FieldTypeInteger, Label: "Graduation Year", Required: true, Format: FormatGraduationYear},
			"highestGpa":           {Type: FieldTypeString, Label: "Highest GPA", Required: true, MaxLength: intPtr(20)},
			"currentAcademicGap":   {Type: FieldTypeInteger, Label: "Academic Gap (years)", Minimum: floatPtr(0), Maximum: floatPtr(30)},

			"interestedCourse": {Type: FieldTypeString, Label: "Interested Course", Required: true, MinLength: intPtr(2), MaxLength: intPtr(120), FreeText: true},
			"preferredIntake":  {Type: FieldTypeString, Label: "Preferred Intake", Required: true, Enum: IntakeSeasons},
			"studyBudget":      {Type: FieldTypeNumber, Label: "Study Budget", Required: true, Minimum: floatPtr(1), Maximum: floatPtr(1_000_000)},

			"budgetRange":   {Type: FieldTypeString, Label: "Budget Range", Required: true, Enum: BudgetRanges},
			"fundingSource": {Type: FieldTypeString, Label: "Funding Source", Required: true, Enum: FundingSources},
			"loanApproval":  {Type: FieldTypeBoolean, Label: "Loan Approved"},
			"loanAmount":    {Type: FieldTypeNumber, Label: "Loan Amount", Minimum: floatPtr(0), Maximum: floatPtr(1_000_000)},

			"preferredCountries": {Type: FieldTypeArray, Label: "Preferred Countries", Required: true, MinItems: intPtr(1), MaxItems: intPtr(5)},

			"currentEmploymentStatus": {Type: FieldTypeString, Label: "Employment Status", Required: true, Enum: EmploymentStatuses},
			"jobTitle":                {Type: FieldTypeString, Label: "Job Title", MinLength: intPtr(2), MaxLength: intPtr(100)},
			"organizationName":        {Type: FieldTypeString, Label: "Organization", MinLength: intPtr(2), MaxLength: intPtr(120)},
			"fieldOfWork":             {Type: FieldTypeString, Label: "Field of Work", MinLength: intPtr(2), MaxLength: intPtr(100)},
			"workExperienceYears":     {Type: FieldTypeNumber, Label: "Work Experience (years)", Minimum: floatPtr(0), Maximum: floatPtr(50)},
			"gapReasonIfAny":          {Type: FieldTypeString, Label: "Gap Reason", MaxLength: intPtr(300), FreeText: true},

			"englishProficiencyTests": {Type: FieldTypeArray, Label: "English Proficiency Tests", MaxItems: intPtr(10)},
		},
	}
}

// Scholarship returns the built-in scholarship listing schema used by the
// admin wizard.
func Scholarship() EntitySchema {
	return EntitySchema{
		Kind: KindScholarship,
		Sections: []Section{
			{ID: "basic", Label: "Basic Information", Icon: "info", Fields: []string{
				"title", "provider", "description", "scholarshipType",
			}},
			{ID: "application", Label: "Application", Icon: "file-text", Fields: []string{
				"applicationDeadline", "applicationUrl", "applicationFee", "difficultyLevel",
			}},
			{ID: "study", Label: "Study Details", Icon: "book-open", Fields: []string{
				"fieldOfStudy", "qualificationLevel", "eligibleCountries",
			}},
			{ID: "funding", Label: "Funding", Icon: "wallet", Fields: []string{
				"fundingType", "fundingAmount", "currencyCode",
			}},
			{ID: "requirements", Label: "Requirements", Icon: "list-checks", Fields: []string{
				"eligibilityRequirements", "languageRequirements", "minimumGpa",
			}},
			{ID: "settings", Label: "Settings", Icon: "settings", Fields: []string{
				"isActive", "featured", "tags", "maxApplications",
			}},
		},
		Fields: map[string]Field{
			"title":           {Type: FieldTypeString, Label: "Title", Required: true, MinLength: intPtr(5), MaxLength: intPtr(150)},
			"provider":        {Type: FieldTypeString, Label: "Provider", Required: true, MinLength: intPtr(2), MaxLength: intPtr(120)},
			"description":     {Type: FieldTypeString, Label: "Description", Required: true, MinLength: intPtr(20), MaxLength: intPtr(5000), FreeText: true},
			"scholarshipType": {Type: FieldTypeString, Label: "Scholarship Type", Required: true, Enum: ScholarshipTypes},

			"applicationDeadline": {Type: FieldTypeString, Label: "Application Deadline", Required: true, Format: FormatDate},
			"applicationUrl":      {Type: FieldTypeString, Label: "Application URL", Required: true, Format: FormatURL, MaxLength: intPtr(500)},
			"applicationFee":      {Type: FieldTypeNumber, Label: "Application Fee", Minimum: floatPtr(0), Maximum: floatPtr(10_000)},
			"difficultyLevel":     {Type: FieldTypeString, Label: "Difficulty Level", Required: true, Enum: DifficultyLevels},

			"fieldOfStudy":       {Type: FieldTypeString, Label: "Field of Study", Required: true, MinLength: intPtr(2), MaxLength: intPtr(120)},
			"qualificationLevel": {Type: FieldTypeString, Label: "Qualification Level", Required: true, Enum: StudyLevels},
			"eligibleCountries":  {Type: FieldTypeArray, Label: "Eligible Countries", MaxItems: intPtr(50)},

			"fundingType":   {Type: FieldTypeString, Label: "Funding Type", Required: true, Enum: FundingTypes},
			"fundingAmount": {Type: FieldTypeNumber, Label: "Funding Amount", Required: true, Minimum: floatPtr(1), Maximum: floatPtr(1_000_000)},
			"currencyCode":  {Type: FieldTypeString, Label: "Currency", Required: true, Format: FormatCurrencyCode},

			"eligibilityRequirements": {Type: FieldTypeArray, Label: "Eligibility Requirements", Required: true, MinItems: intPtr(1), MaxItems: intPtr(50)},
			"languageRequirements":    {Type: FieldTypeArray, Label: "Language Requirements", MaxItems: intPtr(20)},
			"minimumGpa":              {Type: FieldTypeString, Label: "Minimum GPA", MaxLength: intPtr(20)},

			"isActive":        {Type: FieldTypeBoolean, Label: "Active"},
			"featured":        {Type: FieldTypeBoolean, Label: "Featured"},
			"tags":            {Type: FieldTypeArray, Label: "Tags", MaxItems: intPtr(15)},
			"maxApplications": {Type: FieldTypeInteger, Label: "Max Applications", Minimum: floatPtr(1), Maximum: floatPtr(100_000)},
		},
	}
}
