package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-cms-backend/models"
	"github.com/rpupo63/portfolio-cms-backend/storage"
	"gorm.io/datatypes"
)

// serializer shapes rows for the public API: media paths become absolute URLs, dates lose their
// time part and derived fields are computed against now.
type serializer struct {
	store   storage.Storage
	siteURL string
	now     func() time.Time
}

func newSerializer(store storage.Storage, siteURL string) serializer {
	return serializer{store: store, siteURL: siteURL, now: time.Now}
}

func (s serializer) mediaURL(value string) *string {
	if value == "" {
		return nil
	}
	url := storage.AbsoluteURL(s.store, value)
	return &url
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func stringList(values datatypes.JSONSlice[string]) []string {
	return nonNil([]string(values))
}

func jsonObject(values datatypes.JSONMap) map[string]any {
	if values == nil {
		return map[string]any{}
	}
	return values
}

func mapSlice[T, U any](items []T, fn func(T) U) []U {
	out := make([]U, len(items))
	for i, item := range items {
		out[i] = fn(item)
	}
	return out
}

type projectImageResponse struct {
	models.ProjectImage
	Image *string `json:"image"`
}

// demoSummary is the public part of a demo instance. Admin credentials never leave the admin API.
type demoSummary struct {
	ID          uuid.UUID         `json:"id"`
	Status      models.DemoStatus `json:"status"`
	InstanceURL string            `json:"instance_url"`
	IsPublic    bool              `json:"is_public"`
	MaxUsers    int               `json:"max_users"`
	LastChecked *time.Time        `json:"last_checked"`
	CreatedAt   time.Time         `json:"created_at"`
}

type publicDemoResponse struct {
	demoSummary
	Project *projectResponse `json:"project"`
}

type projectResponse struct {
	models.Project
	FeaturedImage  *string                `json:"featured_image"`
	StartDate      *Date                  `json:"start_date"`
	CompletionDate *Date                  `json:"completion_date"`
	DurationDays   *int                   `json:"duration_days"`
	Tags           []string               `json:"tags"`
	Features       []string               `json:"features"`
	Technologies   []models.Technology    `json:"technologies"`
	Images         []projectImageResponse `json:"images,omitempty"`
	CodeSnippets   []models.CodeSnippet   `json:"code_snippets,omitempty"`
	DemoInstance   *demoSummary           `json:"demo_instance,omitempty"`
}

func (s serializer) project(p models.Project) projectResponse {
	resp := projectResponse{
		Project:        p,
		FeaturedImage:  s.mediaURL(p.FeaturedImage),
		StartDate:      datePtr(p.StartDate),
		CompletionDate: datePtr(p.CompletionDate),
		DurationDays:   p.DurationDays(),
		Tags:           stringList(p.Tags),
		Features:       stringList(p.Features),
		Technologies:   nonNil(p.Technologies),
		Images:         mapSlice(p.Images, s.projectImage),
		CodeSnippets:   p.CodeSnippets,
	}
	if p.DemoInstance != nil {
		summary := s.demoSummary(*p.DemoInstance)
		resp.DemoInstance = &summary
	}
	return resp
}

// projectDetail always carries the gallery and snippet lists, even when empty.
func (s serializer) projectDetail(p models.Project) projectResponse {
	resp := s.project(p)
	resp.Images = nonNil(resp.Images)
	resp.CodeSnippets = nonNil(resp.CodeSnippets)
	return resp
}

func (s serializer) projects(projects []models.Project) []projectResponse {
	return mapSlice(projects, s.project)
}

func (s serializer) projectImage(img models.ProjectImage) projectImageResponse {
	return projectImageResponse{ProjectImage: img, Image: s.mediaURL(img.Image)}
}

func (s serializer) demoSummary(d models.DemoInstance) demoSummary {
	return demoSummary{
		ID:          d.ID,
		Status:      d.Status,
		InstanceURL: d.InstanceURL,
		IsPublic:    d.IsPublic,
		MaxUsers:    d.MaxUsers,
		LastChecked: d.LastChecked,
		CreatedAt:   d.CreatedAt,
	}
}

func (s serializer) publicDemo(d models.DemoInstance) publicDemoResponse {
	resp := publicDemoResponse{demoSummary: s.demoSummary(d)}
	if d.Project != nil {
		project := s.project(*d.Project)
		resp.Project = &project
	}
	return resp
}

type experienceResponse struct {
	models.Experience
	CompanyLogo      *string             `json:"company_logo"`
	StartDate        Date                `json:"start_date"`
	EndDate          *Date               `json:"end_date"`
	Duration         string              `json:"duration"`
	DurationMonths   int                 `json:"duration_months"`
	Responsibilities []string            `json:"responsibilities"`
	SkillsGained     []string            `json:"skills_gained"`
	Technologies     []models.Technology `json:"technologies"`
	Projects         []projectResponse   `json:"projects"`
}

func (s serializer) experience(e models.Experience) experienceResponse {
	now := s.now()
	return experienceResponse{
		Experience:       e,
		CompanyLogo:      s.mediaURL(e.CompanyLogo),
		StartDate:        newDate(e.StartDate),
		EndDate:          datePtr(e.EndDate),
		Duration:         e.Duration(now),
		DurationMonths:   e.DurationMonths(now),
		Responsibilities: stringList(e.Responsibilities),
		SkillsGained:     stringList(e.SkillsGained),
		Technologies:     nonNil(e.Technologies),
		Projects:         s.projects(publicOnly(e.Projects)),
	}
}

func (s serializer) experiences(experiences []models.Experience) []experienceResponse {
	return mapSlice(experiences, s.experience)
}

// publicOnly drops linked projects that are hidden from the public site.
func publicOnly(projects []models.Project) []models.Project {
	out := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if p.IsPublic {
			out = append(out, p)
		}
	}
	return out
}

type educationResponse struct {
	models.Education
	InstitutionLogo *string  `json:"institution_logo"`
	Transcript      *string  `json:"transcript"`
	StartDate       Date     `json:"start_date"`
	EndDate         *Date    `json:"end_date"`
	DurationYears   *int     `json:"duration_years"`
	FormattedGrade  *string  `json:"formatted_grade"`
	Achievements    []string `json:"achievements"`
	Courses         []string `json:"courses"`
	SkillsLearned   []string `json:"skills_learned"`
}

func (s serializer) education(e models.Education) educationResponse {
	resp := educationResponse{
		Education:       e,
		InstitutionLogo: s.mediaURL(e.InstitutionLogo),
		Transcript:      s.mediaURL(e.Transcript),
		StartDate:       newDate(e.StartDate),
		EndDate:         datePtr(e.EndDate),
		FormattedGrade:  e.FormattedGrade(),
		Achievements:    stringList(e.Achievements),
		Courses:         stringList(e.Courses),
		SkillsLearned:   stringList(e.SkillsLearned),
	}
	if years, ok := e.DurationYears(s.now()); ok {
		resp.DurationYears = &years
	}
	return resp
}

func (s serializer) educationList(education []models.Education) []educationResponse {
	return mapSlice(education, s.education)
}

type resumeResponse struct {
	models.Resume
	File          *string              `json:"file"`
	FileSizeHuman string               `json:"file_size_human"`
	DownloadURL   string               `json:"download_url"`
	PreviewURL    *string              `json:"preview_url"`
	Metadata      map[string]any       `json:"metadata"`
	Experiences   []experienceResponse `json:"experiences"`
	Education     []educationResponse  `json:"education"`
	Projects      []projectResponse    `json:"projects"`
	Technologies  []models.Technology  `json:"technologies"`
}

func (s serializer) resume(r models.Resume) resumeResponse {
	base := s.siteURL + "/api/v1/public/resumes/" + r.ID.String()
	resp := resumeResponse{
		Resume:        r,
		File:          s.mediaURL(r.File),
		FileSizeHuman: r.FileSizeHuman(),
		DownloadURL:   base + "/download",
		Metadata:      jsonObject(r.Metadata),
		Experiences:   s.experiences(r.Experiences),
		Education:     s.educationList(r.Education),
		Projects:      s.projects(publicOnly(r.Projects)),
		Technologies:  nonNil(r.Technologies),
	}
	if r.FileType == models.FilePDF {
		preview := base + "/preview"
		resp.PreviewURL = &preview
	}
	return resp
}

func (s serializer) resumes(resumes []models.Resume) []resumeResponse {
	return mapSlice(resumes, s.resume)
}

type contentBlockResponse struct {
	models.ContentBlock
	Image *string `json:"image"`
}

func (s serializer) contentBlock(b models.ContentBlock) contentBlockResponse {
	return contentBlockResponse{ContentBlock: b, Image: s.mediaURL(b.Image)}
}

type testimonialResponse struct {
	models.Testimonial
	ClientImage *string `json:"client_image"`
}

func (s serializer) testimonial(t models.Testimonial) testimonialResponse {
	return testimonialResponse{Testimonial: t, ClientImage: s.mediaURL(t.ClientImage)}
}

// publicSettingsResponse leaves out the admin email and the analytics snippet.
type publicSettingsResponse struct {
	SiteName            string         `json:"site_name"`
	SiteTagline         string         `json:"site_tagline"`
	ContactEmail        string         `json:"contact_email"`
	ContactPhone        string         `json:"contact_phone"`
	Location            string         `json:"location"`
	Logo                *string        `json:"logo"`
	Favicon             *string        `json:"favicon"`
	MyImage             *string        `json:"my_image"`
	SelfDescription     string         `json:"self_description"`
	SelfLongDescription string         `json:"self_long_description"`
	PrimaryColor        string         `json:"primary_color"`
	SecondaryColor      string         `json:"secondary_color"`
	DarkMode            bool           `json:"dark_mode"`
	SocialLinks         map[string]any `json:"social_links"`
	SEODescription      string         `json:"seo_description"`
	SEOKeywords         string         `json:"seo_keywords"`
	MaintenanceMode     bool           `json:"maintenance_mode"`
	MaintenanceMessage  string         `json:"maintenance_message"`
}

func (s serializer) publicSettings(st models.SiteSettings) publicSettingsResponse {
	return publicSettingsResponse{
		SiteName:            st.SiteName,
		SiteTagline:         st.SiteTagline,
		ContactEmail:        st.ContactEmail,
		ContactPhone:        st.ContactPhone,
		Location:            st.Location,
		Logo:                s.mediaURL(st.Logo),
		Favicon:             s.mediaURL(st.Favicon),
		MyImage:             s.mediaURL(st.MyImage),
		SelfDescription:     st.SelfDescription,
		SelfLongDescription: st.SelfLongDescription,
		PrimaryColor:        st.PrimaryColor,
		SecondaryColor:      st.SecondaryColor,
		DarkMode:            st.DarkMode,
		SocialLinks:         jsonObject(st.SocialLinks),
		SEODescription:      st.SEODescription,
		SEOKeywords:         st.SEOKeywords,
		MaintenanceMode:     st.MaintenanceMode,
		MaintenanceMessage:  st.MaintenanceMessage,
	}
}

var socialNetworks = []string{"github", "linkedin", "twitter", "facebook", "instagram", "youtube", "discord"}

// socialLinks lists every known network, null when unset.
func socialLinks(st models.SiteSettings) map[string]*string {
	links := make(map[string]*string, len(socialNetworks))
	for _, name := range socialNetworks {
		if link := st.SocialLink(name); link != "" {
			links[name] = &link
		} else {
			links[name] = nil
		}
	}
	return links
}

// Admin responses keep stored media paths but use the same calendar-day format as the public API.
type adminProjectResponse struct {
	models.Project
	StartDate      *Date `json:"start_date"`
	CompletionDate *Date `json:"completion_date"`
}

func adminProject(p models.Project) adminProjectResponse {
	return adminProjectResponse{
		Project:        p,
		StartDate:      datePtr(p.StartDate),
		CompletionDate: datePtr(p.CompletionDate),
	}
}

type adminExperienceResponse struct {
	models.Experience
	StartDate Date  `json:"start_date"`
	EndDate   *Date `json:"end_date"`
}

func adminExperience(e models.Experience) adminExperienceResponse {
	return adminExperienceResponse{Experience: e, StartDate: newDate(e.StartDate), EndDate: datePtr(e.EndDate)}
}

type adminEducationResponse struct {
	models.Education
	StartDate Date  `json:"start_date"`
	EndDate   *Date `json:"end_date"`
}

func adminEducation(e models.Education) adminEducationResponse {
	return adminEducationResponse{Education: e, StartDate: newDate(e.StartDate), EndDate: datePtr(e.EndDate)}
}
