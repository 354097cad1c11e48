package service

import "founder-assessment/internal/domain"

// messageKey identifica un mensaje visible para el usuario.
type messageKey string

const (
	msgRateLimited    messageKey = "rate_limited"
	msgInvalidData    messageKey = "invalid_data"
	msgRequiredFields messageKey = "required_fields"
	msgInvalidEmail   messageKey = "invalid_email"
	msgFirstName      messageKey = "first_name"
	msgLastName       messageKey = "last_name"
	msgCompanyName    messageKey = "company_name"
	msgGeneral        messageKey = "general"
)

var messages = map[domain.Language]map[messageKey]string{
	domain.LanguageDutch: {
		msgRateLimited:    "Te veel verzoeken. Probeer het later opnieuw.",
		msgInvalidData:    "Ongeldige gegevens ontvangen",
		msgRequiredFields: "Alle velden zijn verplicht",
		msgInvalidEmail:   "Ongeldig emailadres",
		msgFirstName:      "Voornaam moet tussen 2 en 50 karakters zijn.",
		msgLastName:       "Achternaam moet tussen 2 en 50 karakters zijn.",
		msgCompanyName:    "Bedrijfsnaam moet tussen 2 en 100 karakters zijn.",
		msgGeneral:        "Er is een fout opgetreden bij het verzenden van de email",
	},
	domain.LanguageEnglish: {
		msgRateLimited:    "Too many requests. Please try again later.",
		msgInvalidData:    "Invalid data received",
		msgRequiredFields: "All fields are required",
		msgInvalidEmail:   "Invalid email address",
		msgFirstName:      "First name must be between 2 and 50 characters.",
		msgLastName:       "Last name must be between 2 and 50 characters.",
		msgCompanyName:    "Company name must be between 2 and 100 characters.",
		msgGeneral:        "An error occurred while sending the email",
	},
}

// Message devuelve el texto localizado; cae al holandes si falta.
func Message(lang domain.Language, key messageKey) string {
	if m, ok := messages[lang]; ok {
		if s, ok := m[key]; ok {
			return s
		}
	}
	return messages[domain.LanguageDutch][key]
}

// GeneralErrorMessage es el mensaje generico para errores internos.
func GeneralErrorMessage(lang domain.Language) string {
	return Message(lang, msgGeneral)
}

// RateLimitMessage es el mensaje para rechazos por rate limit.
func RateLimitMessage(lang domain.Language) string {
	return Message(lang, msgRateLimited)
}

// InvalidDataMessage es el mensaje para payloads que no se pueden leer.
func InvalidDataMessage(lang domain.Language) string {
	return Message(lang, msgInvalidData)
}
