package server

const (
	RouteAccessToken = "/getaccesstoken"
	RouteUserData    = "/getuserdata"
)

func (s *Server) initRoutes() {
	s.RegisterRouteHandler("GET "+RouteAccessToken, ChainMiddleware(s.AccessTokenHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteUserData, ChainMiddleware(s.UserDataHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("OPTIONS /", ChainMiddleware(s.PreflightHandler(), s.APIMiddleware()...))
}
