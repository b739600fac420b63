package allnetwork

import (
	"net/http"

	"github.com/iamshubha/roy-dex-sub005/internal/api"
	"github.com/iamshubha/roy-dex-sub005/internal/util"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/account"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/allnetwork"
	"github.com/labstack/echo/v4"
)

type DBAccountsResponse struct {
	Accounts []*account.DBAccount `json:"accounts"`
}

func PostDBAccountsRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1AllNetwork.POST("/db-accounts", postDBAccountsHandler(s))
}

func postDBAccountsHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var body allnetwork.CandidateParams
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		accounts, err := s.AllNetwork.LoadCandidateAccounts(ctx, body)
		if err != nil {
			util.LogFromContext(ctx).Debug().Err(err).Msg("Failed to load candidate accounts")
			return err
		}

		return util.ValidateAndReturn(c, http.StatusOK, &DBAccountsResponse{Accounts: accounts})
	}
}
