package email

import (
	"bytes"
	"fmt"
	"html/template"
)

var templates = map[string]string{
	"reset_code": `
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Réinitialisation de votre mot de passe</h2>
  <p>Vous avez demandé la réinitialisation de votre mot de passe. Voici votre code :</p>
  <p style="font-size: 28px; font-weight: bold; letter-spacing: 6px; text-align: center; padding: 16px; background: #f4f4f4; border-radius: 8px;">{{.Code}}</p>
  <p>Ce code expire dans <strong>{{.ValidMinutes}} minutes</strong>.</p>
  <p style="color: #888;">Si vous n'êtes pas à l'origine de cette demande, vous pouvez ignorer cet e-mail.</p>
</div>`,

	"welcome": `
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Bienvenue sur GrowCoach, {{.Name}} !</h2>
  <p>Votre compte a bien été créé. Complétez votre profil pour profiter pleinement de la plateforme.</p>
</div>`,

	"company_verified": `
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Félicitations, {{.CompanyName}} !</h2>
  <p>Votre entreprise a été vérifiée. Vos offres d'emploi affichent désormais le badge vérifié.</p>
</div>`,
}

var parsed = func() map[string]*template.Template {
	out := make(map[string]*template.Template, len(templates))
	for name, body := range templates {
		out[name] = template.Must(template.New(name).Parse(body))
	}
	return out
}()

func renderTemplate(name string, data map[string]interface{}) (string, error) {
	tmpl, ok := parsed[name]
	if !ok {
		return "", fmt.Errorf("unknown email template: %s", name)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", name, err)
	}
	return buf.String(), nil
}
