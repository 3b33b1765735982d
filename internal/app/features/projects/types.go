// internal/app/features/projects/types.go
package projects

import (
	"html/template"

	"github.com/dalemusser/ngohub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/ngohub/internal/app/system/uploads"
	"github.com/dalemusser/ngohub/internal/app/system/viewdata"
	"github.com/dalemusser/ngohub/internal/domain/models"
)

type imageRow struct {
	ID  int64
	URL string
}

type projectRow struct {
	models.Project
	DescriptionHTML template.HTML
	ImageRows       []imageRow
}

func toRows(up *uploads.Store, list []models.Project) []projectRow {
	rows := make([]projectRow, 0, len(list))
	for _, p := range list {
		row := projectRow{Project: p, DescriptionHTML: htmlsanitize.PrepareForDisplay(p.Description)}
		for _, img := range p.Images {
			row.ImageRows = append(row.ImageRows, imageRow{ID: img.ID, URL: up.URL(img.ImagePath)})
		}
		rows = append(rows, row)
	}
	return rows
}

type listVM struct {
	viewdata.BaseVM
	Projects []projectRow
	Filters  []string
	Status   string
}

// formVM backs both the add form on the admin list and the edit page.
type formVM struct {
	Title       string
	Description string
	Status      string
	StartDate   string
	EndDate     string
	Location    string
}

type adminVM struct {
	viewdata.BaseVM
	Projects []projectRow
	Statuses []string
	Form     formVM
}

type editVM struct {
	viewdata.BaseVM
	ID       int64
	Statuses []string
	Form     formVM
}

// projectInput is the validated add/edit form.
type projectInput struct {
	Title       string `validate:"required,max=300" label:"Title"`
	Description string `validate:"max=10000" label:"Description"`
	Status      string `validate:"required,projectstatus" label:"Status"`
	StartDate   string `validate:"omitempty,datetime=2006-01-02" label:"Start date"`
	EndDate     string `validate:"omitempty,datetime=2006-01-02" label:"End date"`
	Location    string `validate:"max=300" label:"Location"`
}

func (in projectInput) project(id int64) models.Project {
	return models.Project{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		Status:      models.NormalizeProjectStatus(in.Status),
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Location:    in.Location,
	}
}
