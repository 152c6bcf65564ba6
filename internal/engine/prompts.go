package engine

import (
	"fmt"
	"strconv"

	"marsa/pkg/config"
	"marsa/pkg/locale"
	"marsa/pkg/model"
)

// Interactive selection IDs. The gateway hands them back verbatim in
// list and button reply payloads.
const (
	SelLanguageEN = "lang_en"
	SelLanguageAR = "lang_ar"
	SelBookTour   = "book_tour"
	SelInquiry    = "inquiry"
	SelConfirmYes = "confirm_yes"
	SelConfirmNo  = "confirm_no"

	selTourPrefix = "tour_"
	selTimePrefix = "time_"
)

func languageList() *model.InteractiveSpec {
	return &model.InteractiveSpec{
		Type: "list",
		Body: model.InteractiveBody{Text: "Language / اللغة"},
		Action: model.InteractiveAction{
			Button: "Choose / اختر",
			Sections: []model.InteractiveSection{{
				Title: "Language",
				Rows: []model.InteractiveRow{
					{ID: SelLanguageEN, Title: "English", Description: "Continue in English"},
					{ID: SelLanguageAR, Title: "العربية", Description: "المتابعة بالعربية"},
				},
			}},
		},
	}
}

func menuList(lang locale.Language) *model.InteractiveSpec {
	book := "🚤 Book a Tour"
	ask := "💬 Ask a Question"
	button := "Choose"
	if lang == locale.Arabic {
		book = "🚤 حجز رحلة"
		ask = "💬 استفسار"
		button = "اختر"
	}
	return &model.InteractiveSpec{
		Type: "list",
		Body: model.InteractiveBody{Text: locale.Get(lang, locale.KeyMainMenu)},
		Action: model.InteractiveAction{
			Button: button,
			Sections: []model.InteractiveSection{{
				Title: "Al Bahr Sea Tours",
				Rows: []model.InteractiveRow{
					{ID: SelBookTour, Title: book},
					{ID: SelInquiry, Title: ask},
				},
			}},
		},
	}
}

func tourList(lang locale.Language, tours []config.TourConfig, name string) *model.InteractiveSpec {
	button := "View tours"
	if lang == locale.Arabic {
		button = "عرض الرحلات"
	}
	rows := make([]model.InteractiveRow, 0, len(tours))
	for i, tour := range tours {
		rows = append(rows, model.InteractiveRow{
			ID:          selTourPrefix + strconv.Itoa(i),
			Title:       tour.Name,
			Description: fmt.Sprintf("%g OMR · up to %d guests", tour.PriceOMR, tour.Capacity),
		})
	}
	return &model.InteractiveSpec{
		Type: "list",
		Body: model.InteractiveBody{Text: locale.Format(lang, locale.KeyAskResource, map[string]string{"name": name})},
		Action: model.InteractiveAction{
			Button: button,
			Sections: []model.InteractiveSection{{Title: "Tours", Rows: rows}},
		},
	}
}

func timeList(lang locale.Language, timeslots []string, date, resource string) *model.InteractiveSpec {
	button := "Departure times"
	if lang == locale.Arabic {
		button = "أوقات الانطلاق"
	}
	rows := make([]model.InteractiveRow, 0, len(timeslots))
	for i, ts := range timeslots {
		rows = append(rows, model.InteractiveRow{ID: selTimePrefix + strconv.Itoa(i), Title: ts})
	}
	return &model.InteractiveSpec{
		Type: "list",
		Body: model.InteractiveBody{Text: locale.Format(lang, locale.KeyAskTime, map[string]string{
			"date":     date,
			"resource": resource,
		})},
		Action: model.InteractiveAction{
			Button: button,
			Sections: []model.InteractiveSection{{Title: "Times", Rows: rows}},
		},
	}
}

func confirmButtons(lang locale.Language, summary string) *model.InteractiveSpec {
	yes, no := "✅ Confirm", "❌ Cancel"
	if lang == locale.Arabic {
		yes, no = "✅ تأكيد", "❌ إلغاء"
	}
	return &model.InteractiveSpec{
		Type: "button",
		Body: model.InteractiveBody{Text: summary},
		Action: model.InteractiveAction{
			Buttons: []model.InteractiveButton{
				{Type: "reply", Reply: model.InteractiveRow{ID: SelConfirmYes, Title: yes}},
				{Type: "reply", Reply: model.InteractiveRow{ID: SelConfirmNo, Title: no}},
			},
		},
	}
}

// groupDiscountMin is the party size at which the 10% group rate applies.
const groupDiscountMin = 4

func priceFor(tour config.TourConfig, partySize int) float64 {
	total := tour.PriceOMR * float64(partySize)
	if partySize >= groupDiscountMin {
		total *= 0.9
	}
	return total
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
