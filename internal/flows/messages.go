package flows

// Fallback texts shown instead of backend output.
const (
	TranscriptionUnavailable = "Ingen lyddata modtaget."

	SummaryUnavailable = "Opsummering ikke tilgængelig: der er ingen transskription at opsummere."
	SummaryFailed      = "Opsummering kunne ikke genereres på grund af en fejl."

	ThemesUnavailable = "Ingen temaer identificeret: der er ingen tekst at analysere."
	ThemesFailed      = "Temaer kunne ikke identificeres på grund af en fejl."

	WhiteboardPromptMissing = "Indtast en stemmeprompt for at opdatere whiteboardet."
	WhiteboardFailed        = "Whiteboardet kunne ikke opdateres på grund af en fejl. Det eksisterende indhold er bevaret."

	InsightsUnavailable = "Ingen nye indsigter: der er ingen opsummering at bygge på."
	InsightsFailed      = "Nye indsigter kunne ikke genereres på grund af en fejl."

	NoCyclesMessage = "Der er ingen gennemførte analysecyklusser at lave en rapport over."
	ReportFailed    = "Sessionsrapporten kunne ikke genereres på grund af en fejl. Prøv igen senere."
)

// Report metadata defaults.
const (
	DefaultReportTitle = "Sessionsrapport"
	DefaultProject     = "Ikke angivet"
	DefaultContact     = "Ikke angivet"
	DefaultUser        = "Ukendt deltager"
	FieldNotAvailable  = "Ikke tilgængelig"
)

// DatePlaceholder is replaced with the generation date in a finished report.
const DatePlaceholder = "[DATO]"
