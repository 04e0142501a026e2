package api

import "github.com/gorilla/mux"

// NewRouter builds the route table shared by the server and the tests.
func NewRouter() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/", HandleRoot).Methods("GET")
	r.HandleFunc("/health", HandleHealth).Methods("GET")
	r.HandleFunc("/area", HandleArea).Methods("POST")
	r.HandleFunc("/simbolico", HandleSimbolico).Methods("POST")
	r.HandleFunc("/derivada", HandleDerivada).Methods("POST")
	r.HandleFunc("/limite", HandleLimite).Methods("POST")
	r.HandleFunc("/validar", HandleValidar).Methods("POST")
	r.HandleFunc("/exemplos", HandleExemplos).Methods("GET")
	r.HandleFunc("/grafico", HandleGrafico).Methods("POST")
	r.HandleFunc("/performance", HandlePerformance).Methods("GET")

	return r
}
