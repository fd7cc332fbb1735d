package response

type Error struct {
	Error string `json:"error" example:"message"`
}

type Health struct {
	Status  string `json:"status" example:"healthy"`
	Service string `json:"service" example:"media"`
}

func Healthy() Health {
	return Health{Status: "healthy", Service: "media"}
}
