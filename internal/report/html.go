package report

import "html/template"

var htmlTemplate = template.Must(template.New("report").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <div style="text-align: center; margin-bottom: 30px;">
    {{- if .Options.LogoURL}}
    <img src="{{.Options.LogoURL}}" alt="Logo" style="max-height: 80px; margin-bottom: 20px;">
    {{- end}}
    <h1 style="color: #333;">{{.Labels.Title}}</h1>
  </div>

  <div style="background: #f8f9fa; padding: 20px; border-radius: 8px; margin-bottom: 20px;">
    <h2 style="color: #333; margin-top: 0;">{{.Labels.ContactDetails}}</h2>
    <p><strong>{{.Labels.Name}}:</strong> {{.Contact.FirstName}} {{.Contact.LastName}}</p>
    <p><strong>{{.Labels.Company}}:</strong> {{.Contact.CompanyName}}</p>
    <p><strong>{{.Labels.Email}}:</strong> {{.Contact.Email}}</p>
  </div>

  <div style="background: #e3f2fd; padding: 20px; border-radius: 8px; margin-bottom: 20px; text-align: center;">
    <h2 style="color: #1565c0; margin-top: 0;">{{.Labels.OverallScore}}</h2>
    <div style="font-size: 48px; font-weight: bold; color: #1565c0;">{{.TotalScore}}</div>
    <div style="font-size: 18px; color: #1565c0; margin-top: 10px;">{{.TierLabel}}</div>
    {{- if .TierDescription}}
    <div style="font-size: 14px; color: #555; margin-top: 6px;">{{.TierDescription}}</div>
    {{- end}}
  </div>

  <div style="margin-bottom: 20px;">
    <h2 style="color: #333;">{{.Labels.DetailedScores}}</h2>
    {{- range .Categories}}
    <div style="margin-bottom: 20px; background: #f8f9fa; padding: 15px; border-radius: 8px;">
      <h3 style="color: #555; margin-top: 0;">{{.Name}} ({{.Weight}}%)</h3>
      {{- range .Questions}}
      <div style="margin-bottom: 10px; padding: 10px; background: white; border-radius: 4px;">
        <p style="margin: 0 0 5px 0; font-weight: 500;">{{.Text}}</p>
        <p style="margin: 0; color: #666;"><strong>{{$.Labels.Score}}: {{.Score}}</strong></p>
      </div>
      {{- end}}
      {{- if .Advice}}
      <div style="background: #fff3e0; padding: 12px; border-radius: 6px; border-left: 4px solid #ff9800; margin-top: 10px;">
        <h4 style="color: #e65100; margin: 0 0 8px 0; font-size: 14px;">{{$.Labels.ImprovementAdvice}}</h4>
        <p style="margin: 0; color: #666; font-size: 13px; line-height: 1.4;">{{.Advice}}</p>
      </div>
      {{- end}}
    </div>
    {{- end}}
  </div>

  {{- if .ActionPlan}}
  <div style="background: #e8f5e8; padding: 20px; border-radius: 8px; margin-bottom: 20px; border-left: 4px solid #4caf50;">
    <h2 style="color: #2e7d32; margin-top: 0;">{{.Labels.ActionPlan}}</h2>
    <p style="color: #666; margin-bottom: 15px;">{{.Labels.ActionPlanDescription}}</p>
    {{- range .ActionPlan}}
    <div style="margin-bottom: 15px; background: white; padding: 12px; border-radius: 6px;">
      <h4 style="margin: 0 0 6px 0; color: #333; font-size: 14px;">{{.Position}}. {{.Name}}</h4>
      <p style="margin: 0; color: #666; font-size: 13px; line-height: 1.4;">{{.Advice}}</p>
    </div>
    {{- end}}
  </div>
  {{- end}}

  <div style="background: #fff3e0; padding: 15px; border-radius: 8px; border-left: 4px solid #ff9800; margin-bottom: 30px;">
    <p style="margin: 0; color: #666; font-size: 14px;"><strong>{{.Labels.ScoreExplanation}}</strong><br>{{.Labels.ScoreRange}}</p>
  </div>

  {{- if .Options.ContactURL}}
  <div style="background: #f8f9fa; padding: 20px; border-radius: 8px; text-align: center; margin-bottom: 20px;">
    <h3 style="color: #333; margin-top: 0;">{{.Labels.CTATitle}}</h3>
    <a href="{{.Options.ContactURL}}" style="display: inline-block; background: #1565c0; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; font-weight: bold; margin-top: 10px;">{{.Labels.CTAButton}}</a>
  </div>
  {{- end}}

  <div style="text-align: center; color: #999; font-size: 12px; padding: 20px 0;">
    <p style="margin: 0;">{{.Labels.Disclaimer}}</p>
  </div>
</div>
`))
