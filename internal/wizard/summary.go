package wizard

import (
	"strings"

	"github.com/nurpe/quotation-service/internal/locale"
	"github.com/nurpe/quotation-service/internal/model"
)

// Summarize lays the form out the way the review step presents it.
func (m *Machine) Summarize(form model.FormState, labels locale.Labels) model.Summary {
	yesNo := func(v bool) string {
		if v {
			return labels.Get("yes")
		}
		return labels.Get("no")
	}
	row := func(key, value string) model.SummaryRow {
		return model.SummaryRow{Label: labels.Get(key), Value: value}
	}

	cargo := []model.SummaryRow{
		row("summary.type", form.QuotationType),
		row("summary.volume", form.Volume+" CBM"),
		row("summary.weight", form.Weight+" KG"),
		row("summary.temperature", yesNo(form.TemperatureControlled)),
		row("summary.dangerous", yesNo(form.DangerousGoods)),
		row("summary.customs", yesNo(form.CustomsFormalities)),
		row("summary.insurance", yesNo(form.Insurance)),
	}
	if form.Comment != "" {
		cargo = append(cargo, row("summary.comment", form.Comment))
	}

	summary := model.Summary{
		Title: labels.Get("step.5"),
		Sections: []model.SummarySection{
			{
				Title: labels.Get("section.routing"),
				Rows: []model.SummaryRow{
					row("summary.transportMode", form.TransportMode),
					row("summary.incoterm", form.Incoterm),
					row("summary.scope", form.Scope),
					row("summary.origin", place(form.OriginCity, form.OriginCountry, form.OriginDate)),
					row("summary.destination", place(form.DestinationCity, form.DestinationCountry, form.DestinationDate)),
				},
			},
			{Title: labels.Get("section.cargo"), Rows: cargo},
			{
				Title: labels.Get("section.contact"),
				Rows: []model.SummaryRow{
					row("summary.name", strings.TrimSpace(form.FirstName+" "+form.LastName)),
					row("summary.email", form.Email),
					row("summary.phone", strings.TrimSpace(form.PhoneCode+" "+form.PhoneNumber)),
					row("summary.jobTitle", form.JobTitle),
				},
			},
			{
				Title: labels.Get("section.company"),
				Rows: []model.SummaryRow{
					row("summary.companyName", form.CompanyName),
					row("summary.address", form.CompanyAddress),
					row("summary.postalCode", form.PostalCode),
					row("summary.city", form.CompanyCity),
					row("summary.country", form.CompanyCountry),
					row("summary.website", form.Website),
				},
			},
		},
		FilesTitle: labels.Get("section.documents"),
		NoFiles:    labels.Get("summary.noFiles"),
		FileColumns: [3]string{
			labels.Get("summary.fileName"),
			labels.Get("summary.fileType"),
			labels.Get("summary.fileSize"),
		},
	}
	for _, f := range form.Files {
		summary.Files = append(summary.Files, model.SummaryFile{
			Name:     f.Name,
			Type:     f.ContentType,
			Size:     f.Size,
			SizeText: formatKB(f.Size, labels),
		})
	}
	return summary
}

func place(city, country, date string) string {
	return city + ", " + country + " – " + date
}
