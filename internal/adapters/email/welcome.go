package email

import (
	"bytes"
	"fmt"
	"html/template"
)

// Welcome describes the account a welcome mail announces.
type Welcome struct {
	FirstName    string
	Email        string
	MemberKind   string // "jugador" or "entrenador"
	DashboardURL string
}

var welcomeTemplate = template.Must(template.New("welcome").Parse(`<p>Hola {{.FirstName}},</p>
<p>El club te registró como {{.MemberKind}} y creó tu cuenta con el correo <strong>{{.Email}}</strong>.</p>
<p>Puedes ingresar en <a href="{{.DashboardURL}}">{{.DashboardURL}}</a> con la contraseña que te entregó el club.</p>`))

// WelcomeMessage renders the welcome mail. The password is never included.
// PRE: w.Email is non-empty
func WelcomeMessage(w Welcome) (SendRequest, error) {
	var buf bytes.Buffer
	if err := welcomeTemplate.Execute(&buf, w); err != nil {
		return SendRequest{}, fmt.Errorf("render welcome mail: %w", err)
	}
	return SendRequest{
		To:      []string{w.Email},
		Subject: "Bienvenido al club",
		HTML:    buf.String(),
	}, nil
}
