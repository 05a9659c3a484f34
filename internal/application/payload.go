package application

// Payload is the flattened submission document stored on the application
// record. Each repeatable array is serialized as parallel per-field arrays,
// indexed identically across fields.
type Payload struct {
	// Personal
	FirstName      string `json:"firstName"`
	FamilyName     string `json:"familyName"`
	Email          string `json:"email"`
	Mobile         string `json:"mobile"`
	DateOfBirth    string `json:"dob"`
	Gender         string `json:"gender"`
	Nationality    string `json:"nationality"`
	CountryOfBirth string `json:"countryBirth"`
	NativeLanguage string `json:"nativeLang"`

	// Passport
	PassportName       string `json:"passportName"`
	PassportIssueLoc   string `json:"passportIssueLoc"`
	PassportNumber     string `json:"passportNumber"`
	PassportIssueDate  string `json:"passportIssueDate"`
	PassportExpiryDate string `json:"passportExpiryDate"`

	// Permanent address
	PermCountry string `json:"permCountry"`
	PermCity    string `json:"permCity"`
	PermAdd1    string `json:"permAdd1"`
	PermAdd2    string `json:"permAdd2"`
	PermPost    string `json:"permPost"`
	PermState   string `json:"permState"`

	// Current address
	CurrCountry string `json:"currCountry"`
	CurrCity    string `json:"currCity"`
	CurrAdd1    string `json:"currAdd1"`
	CurrAdd2    string `json:"currAdd2"`
	CurrPost    string `json:"currPost"`
	CurrState   string `json:"currState"`

	DestCountries []string `json:"destCountries"`

	// Education, one array per field
	AcadCountry     []string `json:"acad_country"`
	AcadInstitution []string `json:"acad_institution"`
	AcadCourse      []string `json:"acad_course"`
	AcadLevel       []string `json:"acad_level"`
	AcadStart       []string `json:"acad_start"`
	AcadEnd         []string `json:"acad_end"`
	AcadFulltime    []string `json:"acad_fulltime"`
	AcadScore       []string `json:"acad_score"`
	AcadCurrent     []string `json:"acad_current"`

	// Academic interest
	StudyLevel       string `json:"studyLevel"`
	Discipline       string `json:"discipline"`
	Programme        string `json:"programme"`
	AcademicStart    string `json:"academicStart"`
	AcademicLocation string `json:"academicLocation"`

	// Travel
	AppliedRemain string   `json:"appliedRemain"`
	VisaNeeded    []string `json:"visaNeeded"`
	VisaRefused   string   `json:"visaRefused"`

	// Referees, one array per field
	RefName     []string `json:"ref_name"`
	RefPosition []string `json:"ref_position"`
	RefTitle    []string `json:"ref_title"`
	RefEmail    []string `json:"ref_email"`
	RefKnown    []string `json:"ref_known"`
	RefContact  []string `json:"ref_contact"`
	RefRelation []string `json:"ref_relation"`
	RefInst     []string `json:"ref_inst"`
	RefInstAddr []string `json:"ref_inst_addr"`

	// Work history, one array per field
	NoWorkExp    bool     `json:"noWorkExp"`
	WorkTitle    []string `json:"work_title"`
	WorkOrg      []string `json:"work_org"`
	WorkAddr     []string `json:"work_addr"`
	WorkDesc     []string `json:"work_desc"`
	WorkRef      []string `json:"work_ref"`
	WorkRefEmail []string `json:"work_ref_email"`
	WorkStart    []string `json:"work_start"`
	WorkEnd      []string `json:"work_end"`
	WorkCurrent  []string `json:"work_current"`

	// English test
	EnglishFirst string `json:"englishFirst"`
	EngTestType  string `json:"engTestType"`
	EngScore     string `json:"engScore"`
	EngDate      string `json:"engDate"`

	Accommodation string `json:"accom"`

	// Declarations
	Dec1 bool `json:"dec1"`
	Dec2 bool `json:"dec2"`
	Dec3 bool `json:"dec3"`

	// Uploaded document URLs keyed by slot name.
	Documents map[string][]string `json:"documents"`
}

// BuildPayload flattens the draft and the uploaded document URL map into the
// stored submission document.
func BuildPayload(d *Draft, documents map[string][]string) Payload {
	p := Payload{
		FirstName:      d.Personal.FirstName,
		FamilyName:     d.Personal.FamilyName,
		Email:          d.Personal.Email,
		Mobile:         d.Personal.Mobile,
		DateOfBirth:    d.Personal.DateOfBirth,
		Gender:         d.Personal.Gender,
		Nationality:    d.Personal.Nationality,
		CountryOfBirth: d.Personal.CountryOfBirth,
		NativeLanguage: d.Personal.NativeLanguage,

		PassportName:       d.Passport.Name,
		PassportIssueLoc:   d.Passport.IssueLocation,
		PassportNumber:     d.Passport.Number,
		PassportIssueDate:  d.Passport.IssueDate,
		PassportExpiryDate: d.Passport.ExpiryDate,

		PermCountry: d.PermanentAddress.Country,
		PermCity:    d.PermanentAddress.City,
		PermAdd1:    d.PermanentAddress.Line1,
		PermAdd2:    d.PermanentAddress.Line2,
		PermPost:    d.PermanentAddress.PostCode,
		PermState:   d.PermanentAddress.State,

		CurrCountry: d.CurrentAddress.Country,
		CurrCity:    d.CurrentAddress.City,
		CurrAdd1:    d.CurrentAddress.Line1,
		CurrAdd2:    d.CurrentAddress.Line2,
		CurrPost:    d.CurrentAddress.PostCode,
		CurrState:   d.CurrentAddress.State,

		DestCountries: append([]string{}, d.DestinationCountries...),

		StudyLevel:       d.Interest.StudyLevel,
		Discipline:       d.Interest.Discipline,
		Programme:        d.Interest.Programme,
		AcademicStart:    d.Interest.Start,
		AcademicLocation: d.Interest.Location,

		AppliedRemain: d.Travel.AppliedRemain,
		VisaNeeded:    append([]string{}, d.Travel.VisaNeeded...),
		VisaRefused:   d.Travel.VisaRefused,

		NoWorkExp: d.NoWorkExperience,

		EnglishFirst: d.English.FirstLanguage,
		EngTestType:  d.English.TestType,
		EngScore:     d.English.Score,
		EngDate:      d.English.Date,

		Accommodation: d.Accommodation,

		Dec1: d.Declarations.Accuracy,
		Dec2: d.Declarations.Terms,
		Dec3: d.Declarations.DataProcessing,

		Documents: documents,
	}

	n := len(d.Educations)
	p.AcadCountry = make([]string, n)
	p.AcadInstitution = make([]string, n)
	p.AcadCourse = make([]string, n)
	p.AcadLevel = make([]string, n)
	p.AcadStart = make([]string, n)
	p.AcadEnd = make([]string, n)
	p.AcadFulltime = make([]string, n)
	p.AcadScore = make([]string, n)
	p.AcadCurrent = make([]string, n)
	for i, e := range d.Educations {
		p.AcadCountry[i] = e.Country
		p.AcadInstitution[i] = e.Institution
		p.AcadCourse[i] = e.Course
		p.AcadLevel[i] = e.Level
		p.AcadStart[i] = e.Start
		p.AcadEnd[i] = e.End
		p.AcadFulltime[i] = e.StudyMode
		p.AcadScore[i] = e.Score
		p.AcadCurrent[i] = e.Current
	}

	n = len(d.Referees)
	p.RefName = make([]string, n)
	p.RefPosition = make([]string, n)
	p.RefTitle = make([]string, n)
	p.RefEmail = make([]string, n)
	p.RefKnown = make([]string, n)
	p.RefContact = make([]string, n)
	p.RefRelation = make([]string, n)
	p.RefInst = make([]string, n)
	p.RefInstAddr = make([]string, n)
	for i, r := range d.Referees {
		p.RefName[i] = r.Name
		p.RefPosition[i] = r.Position
		p.RefTitle[i] = r.Title
		p.RefEmail[i] = r.Email
		p.RefKnown[i] = r.Known
		p.RefContact[i] = r.Contact
		p.RefRelation[i] = r.Relation
		p.RefInst[i] = r.Institution
		p.RefInstAddr[i] = r.InstitutionAddress
	}

	n = len(d.Works)
	p.WorkTitle = make([]string, n)
	p.WorkOrg = make([]string, n)
	p.WorkAddr = make([]string, n)
	p.WorkDesc = make([]string, n)
	p.WorkRef = make([]string, n)
	p.WorkRefEmail = make([]string, n)
	p.WorkStart = make([]string, n)
	p.WorkEnd = make([]string, n)
	p.WorkCurrent = make([]string, n)
	for i, w := range d.Works {
		p.WorkTitle[i] = w.Title
		p.WorkOrg[i] = w.Organisation
		p.WorkAddr[i] = w.Address
		p.WorkDesc[i] = w.Description
		p.WorkRef[i] = w.RefContact
		p.WorkRefEmail[i] = w.RefEmail
		p.WorkStart[i] = w.Start
		p.WorkEnd[i] = w.End
		p.WorkCurrent[i] = w.Current
	}

	return p
}
