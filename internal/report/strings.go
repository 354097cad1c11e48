package report

import "founder-assessment/internal/domain"

// Labels son los textos fijos del reporte en un idioma.
type Labels struct {
	Title                 string
	ContactDetails        string
	Name                  string
	Company               string
	Email                 string
	OverallScore          string
	DetailedScores        string
	Score                 string
	Weight                string
	ImprovementAdvice     string
	ActionPlan            string
	ActionPlanDescription string
	ScoreExplanation      string
	ScoreRange            string
	CTATitle              string
	CTAButton             string
	Disclaimer            string
	Subject               string
}

var translations = map[domain.Language]Labels{
	domain.LanguageDutch: {
		Title:                 "Founder Dependency Assessment Resultaten",
		ContactDetails:        "Contactgegevens",
		Name:                  "Naam",
		Company:               "Bedrijf",
		Email:                 "Email",
		OverallScore:          "Overall Score",
		DetailedScores:        "Gedetailleerde Scores per Categorie",
		Score:                 "Score",
		Weight:                "Weging",
		ImprovementAdvice:     "Verbeteradvies",
		ActionPlan:            "90-Dagen Actieplan",
		ActionPlanDescription: "Focus op de laagst scorende categorieën voor maximale impact:",
		ScoreExplanation:      "Score betekenis:",
		ScoreRange:            "0 = Founder afhankelijk | 1 = Deels afhankelijk | 2 = Gemiddeld | 3 = Grotendeels onafhankelijk | 4 = Volledig onafhankelijk",
		CTATitle:              "Wil je de vervolgstappen rondom de uitkomsten vrijblijvend bespreken?",
		CTAButton:             "Plan een vrijblijvend strategiegesprek in",
		Disclaimer:            "Deze assessment is bedoeld als indicatie. Voor een grondige analyse van uw bedrijf raden wij professionele begeleiding aan door een ervaren business consultant.",
		Subject:               "Nieuwe Assessment: %s - Score: %d",
	},
	domain.LanguageEnglish: {
		Title:                 "Founder Dependency Assessment Results",
		ContactDetails:        "Contact Details",
		Name:                  "Name",
		Company:               "Company",
		Email:                 "Email",
		OverallScore:          "Overall Score",
		DetailedScores:        "Detailed Scores by Category",
		Score:                 "Score",
		Weight:                "Weight",
		ImprovementAdvice:     "Improvement Advice",
		ActionPlan:            "90-Day Action Plan",
		ActionPlanDescription: "Focus on the lowest scoring categories for maximum impact:",
		ScoreExplanation:      "Score meaning:",
		ScoreRange:            "0 = Founder dependent | 1 = Partially dependent | 2 = Average | 3 = Largely independent | 4 = Fully independent",
		CTATitle:              "Would you like to discuss the next steps regarding the results without obligation?",
		CTAButton:             "Schedule a strategy consultation",
		Disclaimer:            "This assessment is intended as an indication. For a thorough analysis of your business, we recommend professional guidance from an experienced business consultant.",
		Subject:               "New Assessment: %s - Score: %d",
	},
}

func labelsFor(lang domain.Language) Labels {
	if l, ok := translations[lang]; ok {
		return l
	}
	return translations[domain.LanguageDutch]
}

// ScaleLegend describe el significado de cada valor de la escala.
func ScaleLegend(lang domain.Language) string {
	return labelsFor(lang).ScoreRange
}
