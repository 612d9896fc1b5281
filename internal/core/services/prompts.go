package services

import (
	"strings"

	"github.com/MagickCodes/text-aufbereiter/internal/core/domain"
)

// buildInstruction renders the system instruction for the delegated
// rewrite step. Standard mode grants the model structural freedom
// within the configured toggles; meditation mode permits almost
// nothing beyond junk removal and declares protection placeholders
// inviolable.
func buildInstruction(opts domain.CleaningOptions) string {
	if opts.Mode == domain.ModeMeditation {
		return buildMeditationInstruction(opts)
	}
	return buildStandardInstruction(opts)
}

func buildStandardInstruction(opts domain.CleaningOptions) string {
	var b strings.Builder
	b.WriteString("Du bereitest einen Textausschnitt für die Sprachausgabe auf. ")
	b.WriteString("Gib ausschließlich den überarbeiteten Text zurück: ohne Markdown, ")
	b.WriteString("ohne Einleitung, ohne Kommentare, ohne Anführungszeichen um das Ganze.\n\n")
	b.WriteString("Regeln:\n")
	b.WriteString("- Entferne Seitenzahlen, Kopf- und Fußzeilen.\n")

	switch opts.ChapterStyle {
	case domain.ChapterRemove:
		b.WriteString("- Entferne Kapitelüberschriften und Nummerierungen ersatzlos.\n")
	case domain.ChapterSpoken:
		b.WriteString("- Formuliere Kapitelüberschriften als gesprochene Ansage um (z.B. \"Kapitel drei: ...\").\n")
	default:
		b.WriteString("- Lass Kapitelüberschriften unverändert stehen.\n")
	}

	if opts.ListStyle == domain.ListProse {
		b.WriteString("- Wandle Aufzählungen und Listen in fließende Sätze um.\n")
	} else {
		b.WriteString("- Lass Listen in ihrer Form bestehen.\n")
	}

	if opts.Hyphenation == domain.HyphenJoin {
		b.WriteString("- Füge am Zeilenende getrennte Wörter wieder zusammen.\n")
	}
	if opts.RemoveURLs {
		b.WriteString("- Entferne URLs und Webadressen.\n")
	}
	if opts.RemoveEmails {
		b.WriteString("- Entferne E-Mail-Adressen.\n")
	}
	if opts.RemoveReferences {
		b.WriteString("- Entferne Quellenverweise, Fußnotenzeichen und Zitatnummern.\n")
	}
	if opts.RemoveTOC {
		b.WriteString("- Entferne Inhaltsverzeichnisse und deren Einträge.\n")
	}
	if opts.FixTypography {
		b.WriteString("- Korrigiere Anführungszeichen, Gedankenstriche und Leerzeichen.\n")
	}
	if opts.ExpandAbbreviations {
		b.WriteString("- Schreibe verbliebene Abkürzungen aus.\n")
	}
	if opts.CustomInstruction != "" {
		b.WriteString("- " + opts.CustomInstruction + "\n")
	}

	b.WriteString("\nInhaltliche Aussagen dürfen nicht verändert werden.")
	return b.String()
}

func buildMeditationInstruction(opts domain.CleaningOptions) string {
	var b strings.Builder
	b.WriteString("Du bereinigst ein Meditationsskript für die Sprachausgabe. ")
	b.WriteString("Der Wortlaut ist unantastbar: Formulierungen, Satzbau und Reihenfolge ")
	b.WriteString("bleiben exakt erhalten. Gib nur den Text zurück, ohne Markdown und ohne Einleitung.\n\n")
	b.WriteString("Erlaubt ist ausschließlich:\n")
	b.WriteString("- Entfernen von Seitenzahlen, Kopf- und Fußzeilen.\n")

	if opts.Hyphenation == domain.HyphenJoin {
		b.WriteString("- Zusammenfügen am Zeilenende getrennter Wörter.\n")
	}
	if opts.FixTypography {
		b.WriteString("- Korrektur von Anführungszeichen und Leerzeichen.\n")
	}
	if opts.ExpandAbbreviations {
		b.WriteString("- Ausschreiben von Abkürzungen.\n")
	}
	if opts.CustomInstruction != "" {
		b.WriteString("- " + opts.CustomInstruction + "\n")
	}

	b.WriteString("\nPlatzhalter der Form [[PROTECTED_STAGE_DIRECTION_n]] sind unantastbar: ")
	b.WriteString("Sie bleiben exakt an ihrer Stelle, Zeichen für Zeichen unverändert.")
	return b.String()
}
