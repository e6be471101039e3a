package public

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"foodtook_backoffice/pkg/session"
)

// Benefit is one card of a landing section
type Benefit struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Landing is the public content shown to one audience
type Landing struct {
	Audience string    `json:"audience"`
	Title    string    `json:"title"`
	Subtitle string    `json:"subtitle"`
	Benefits []Benefit `json:"benefits"`
	CTALabel string    `json:"ctaLabel"`
	// CTAEvent is the auth-mode event the call to action fires
	CTAEvent session.Event `json:"ctaEvent,omitempty"`
}

var landings = map[string]Landing{
	"consumers": {
		Audience: "consumers",
		Title:    "Tu comida favorita, en minutos",
		Subtitle: "Cientos de restaurantes de tu ciudad en una sola app.",
		Benefits: []Benefit{
			{"Entrega rápida", "Repartidores cerca de ti en todo momento."},
			{"Historias de restaurantes", "Descubre platillos nuevos cada día."},
			{"Pagos seguros", "Paga con tarjeta o efectivo sin complicaciones."},
		},
		CTALabel: "Descarga la app",
	},
	"restaurants": {
		Audience: "restaurants",
		Title:    "Haz crecer tu restaurante con FoodTook",
		Subtitle: "Llega a miles de clientes nuevos sin invertir en reparto.",
		Benefits: []Benefit{
			{"Más pedidos", "Aparece frente a clientes que buscan tu tipo de cocina."},
			{"Métricas claras", "Conoce tu GMV, conversión y pedidos desde historias."},
			{"Pagos semanales", "Recibe tus ventas cada semana."},
		},
		CTALabel: "Registra tu restaurante",
		CTAEvent: session.EventStartRestaurantRegistration,
	},
	"riders": {
		Audience: "riders",
		Title:    "Reparte con FoodTook",
		Subtitle: "Gana dinero con tu propio horario.",
		Benefits: []Benefit{
			{"Horario flexible", "Conéctate cuando quieras."},
			{"Ganancias al día", "Consulta lo que llevas ganado en tiempo real."},
			{"Soporte 24/7", "Un equipo listo para ayudarte en cada entrega."},
		},
		CTALabel: "Quiero ser repartidor",
		CTAEvent: session.EventStartRiderRegistration,
	},
}

// GetLanding returns the landing section of an audience
func GetLanding(c *gin.Context) {
	l, ok := landings[c.Param("audience")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Unknown audience", "audiences": []string{"consumers", "restaurants", "riders"}})
		return
	}
	c.JSON(http.StatusOK, l)
}
