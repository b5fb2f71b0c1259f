package website

import "time"

// ProjectStatus tracks the lifecycle of a generated website on the dashboard.
type ProjectStatus string

const (
	ProjectDraft     ProjectStatus = "draft"
	ProjectPublished ProjectStatus = "published"
	ProjectArchived  ProjectStatus = "archived"
)

// MaxRecentProjects bounds the recent projects list.
const MaxRecentProjects = 10

// ProjectSummary is the dashboard projection of a website.
type ProjectSummary struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	BusinessName string        `json:"businessName"`
	BusinessType string        `json:"businessType"`
	LastModified time.Time     `json:"lastModified"`
	Status       ProjectStatus `json:"status"`
	PreviewImage string        `json:"previewImage,omitempty"`
}

// Summarize projects a website into a dashboard summary.
func Summarize(site Website, status ProjectStatus, modified time.Time) ProjectSummary {
	if status == "" {
		status = ProjectDraft
	}
	return ProjectSummary{
		ID:           site.ID,
		Title:        site.Title,
		BusinessName: site.BusinessName,
		BusinessType: site.BusinessType,
		LastModified: modified,
		Status:       status,
		PreviewImage: PreviewImage(site),
	}
}

// PreviewImage picks the first hero image, falling back to any block image.
func PreviewImage(site Website) string {
	for _, block := range site.Blocks {
		if block.Type != BlockHero {
			continue
		}
		if block.Content.BackgroundImage != "" {
			return block.Content.BackgroundImage
		}
		if block.Content.Image != "" {
			return block.Content.Image
		}
	}
	for _, block := range site.Blocks {
		if block.Content.Image != "" {
			return block.Content.Image
		}
		if len(block.Content.Images) > 0 {
			return block.Content.Images[0]
		}
	}
	return ""
}

// UpsertSummary inserts summary at the front of list, removing any previous
// entry with the same id and trimming the list to limit entries.
func UpsertSummary(list []ProjectSummary, summary ProjectSummary, limit int) []ProjectSummary {
	if limit <= 0 {
		limit = MaxRecentProjects
	}
	out := make([]ProjectSummary, 0, len(list)+1)
	out = append(out, summary)
	for _, existing := range list {
		if existing.ID == summary.ID {
			continue
		}
		out = append(out, existing)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
