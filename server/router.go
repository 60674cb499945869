package server

import (
	"net/http"

	"student-records/filestore"
	"student-records/handlers"
	"student-records/middlewares"
	"student-records/repositories"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
)

// Route describes one endpoint of the API
type Route struct {
	Name    string
	Method  string
	Path    string
	Handler http.Handler
}

// Deps are the process-wide collaborators shared by all requests
type Deps struct {
	DB            *sqlx.DB
	Files         *filestore.Store
	AllowedOrigin string
}

// Routes returns the route table of the API
func Routes(deps Deps) []Route {
	authHandler := handlers.NewAuthHandler(repositories.NewUserRepository(deps.DB))
	studentHandler := handlers.NewStudentHandler(repositories.NewStudentRepository(deps.DB), deps.Files)
	uploadHandler := handlers.NewUploadHandler(deps.Files)

	return []Route{
		{Name: "HealthCheck", Method: http.MethodGet, Path: "/health", Handler: http.HandlerFunc(handlers.Health)},

		{Name: "Register", Method: http.MethodPost, Path: "/register", Handler: http.HandlerFunc(authHandler.Register)},
		{Name: "Login", Method: http.MethodPost, Path: "/login", Handler: http.HandlerFunc(authHandler.Login)},
		{Name: "ListUsers", Method: http.MethodGet, Path: "/users", Handler: http.HandlerFunc(authHandler.ListUsers)},

		{Name: "ListStudents", Method: http.MethodGet, Path: "/students", Handler: http.HandlerFunc(studentHandler.ListStudents)},
		{Name: "GetStudent", Method: http.MethodGet, Path: "/students/{idno}", Handler: http.HandlerFunc(studentHandler.GetStudent)},
		{Name: "CreateStudent", Method: http.MethodPost, Path: "/students", Handler: http.HandlerFunc(studentHandler.CreateStudent)},
		{Name: "UpdateStudent", Method: http.MethodPut, Path: "/students/{idno}", Handler: http.HandlerFunc(studentHandler.UpdateStudent)},
		{Name: "DeleteStudent", Method: http.MethodDelete, Path: "/students/{idno}", Handler: http.HandlerFunc(studentHandler.DeleteStudent)},

		{Name: "UploadPhoto", Method: http.MethodPost, Path: "/upload", Handler: http.HandlerFunc(uploadHandler.UploadPhoto)},
		{Name: "ServePhoto", Method: http.MethodGet, Path: "/uploads/{filename}", Handler: deps.Files},
	}
}

// NewRouter builds the HTTP handler of the API with CORS, request ids and panic recovery
func NewRouter(deps Deps) http.Handler {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(handlers.NotFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(handlers.MethodNotAllowed)

	for _, route := range Routes(deps) {
		router.Handle(route.Path, route.Handler).Methods(route.Method).Name(route.Name)
	}

	var h http.Handler = router
	h = middlewares.Recover(h)
	h = middlewares.CORS(deps.AllowedOrigin)(h)
	h = middlewares.RequestID(h)
	return h
}
