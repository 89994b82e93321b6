package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/davixiao/MeetTheDev/internal/api/metrics"
	"github.com/davixiao/MeetTheDev/internal/core/domain"
	"github.com/davixiao/MeetTheDev/internal/core/ports"
)

type ProfileHandler struct {
	profiles ports.ProfileService
}

func NewProfileHandler(profiles ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// Me returns the caller's profile.
//
// @Summary      Current user's profile
// @Tags         profile
// @Produce      json
// @Security     TokenAuth
// @Success      200  {object}  domain.Profile
// @Failure      401  {object}  msgResponse
// @Failure      404  {object}  msgResponse
// @Router       /profile/me [get]
func (h *ProfileHandler) Me(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	profile, err := h.profiles.GetMine(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// Upsert creates or updates the caller's profile.
//
// @Summary      Create or update profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body      ports.UpsertProfileInput  true  "Profile fields; skills is comma separated"
// @Success      200   {object}  domain.Profile
// @Failure      400   {object}  fieldErrorsDoc
// @Failure      401   {object}  msgResponse
// @Router       /profile [post]
func (h *ProfileHandler) Upsert(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var in ports.UpsertProfileInput
	if err := bind(c, &in); err != nil {
		return err
	}

	res, err := h.profiles.Upsert(c.Request().Context(), userID, in)
	if err != nil {
		return err
	}

	mode := "updated"
	if res.Created {
		mode = "created"
	}
	metrics.ProfileUpsertsTotal.WithLabelValues(mode).Inc()
	c.Response().Header().Set("X-Profile-Created", boolString(res.Created))
	return c.JSON(http.StatusOK, res.Profile)
}

// List returns every profile.
//
// @Summary      All profiles
// @Tags         profile
// @Produce      json
// @Success      200  {array}   domain.Profile
// @Failure      500  {object}  msgResponse
// @Router       /profile [get]
func (h *ProfileHandler) List(c echo.Context) error {
	profiles, err := h.profiles.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profiles)
}

// ByUser returns the profile of the given user.
//
// @Summary      Profile by user id
// @Tags         profile
// @Produce      json
// @Param        user_id  path      string  true  "User id"
// @Success      200      {object}  domain.Profile
// @Failure      404      {object}  msgResponse
// @Router       /profile/user/{user_id} [get]
func (h *ProfileHandler) ByUser(c echo.Context) error {
	profile, err := h.profiles.GetByUserID(c.Request().Context(), c.Param("user_id"))
	if errors.Is(err, domain.ErrProfileNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Profile not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// Delete removes the caller's account, profile and posts.
//
// @Summary      Delete account
// @Tags         profile
// @Produce      json
// @Security     TokenAuth
// @Success      200  {object}  msgResponse
// @Failure      401  {object}  msgResponse
// @Failure      500  {object}  msgResponse
// @Router       /profile [delete]
func (h *ProfileHandler) Delete(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.profiles.Remove(c.Request().Context(), userID); err != nil {
		return err
	}

	metrics.AccountsDeletedTotal.Inc()
	return c.JSON(http.StatusOK, msgResponse{Msg: "User deleted"})
}

// AddExperience prepends an experience entry.
//
// @Summary      Add experience
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body      ports.ExperienceInput  true  "Experience entry"
// @Success      200   {object}  domain.Profile
// @Failure      400   {object}  fieldErrorsDoc
// @Failure      404   {object}  msgResponse
// @Router       /profile/experience [put]
func (h *ProfileHandler) AddExperience(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var in ports.ExperienceInput
	if err := bind(c, &in); err != nil {
		return err
	}

	profile, err := h.profiles.AddExperience(c.Request().Context(), userID, in)
	if err != nil {
		return err
	}
	metrics.SubdocMutationsTotal.WithLabelValues("experience", "add").Inc()
	return c.JSON(http.StatusOK, profile)
}

// RemoveExperience deletes an experience entry by id.
//
// @Summary      Remove experience
// @Tags         profile
// @Produce      json
// @Security     TokenAuth
// @Param        exp_id  path      string  true  "Experience id"
// @Success      200     {object}  domain.Profile
// @Failure      404     {object}  msgResponse
// @Router       /profile/experience/{exp_id} [delete]
func (h *ProfileHandler) RemoveExperience(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	profile, err := h.profiles.RemoveExperience(c.Request().Context(), userID, c.Param("exp_id"))
	if err != nil {
		return err
	}
	metrics.SubdocMutationsTotal.WithLabelValues("experience", "remove").Inc()
	return c.JSON(http.StatusOK, profile)
}

// AddEducation prepends an education entry.
//
// @Summary      Add education
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body      ports.EducationInput  true  "Education entry"
// @Success      200   {object}  domain.Profile
// @Failure      400   {object}  fieldErrorsDoc
// @Failure      404   {object}  msgResponse
// @Router       /profile/education [put]
func (h *ProfileHandler) AddEducation(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var in ports.EducationInput
	if err := bind(c, &in); err != nil {
		return err
	}

	profile, err := h.profiles.AddEducation(c.Request().Context(), userID, in)
	if err != nil {
		return err
	}
	metrics.SubdocMutationsTotal.WithLabelValues("education", "add").Inc()
	return c.JSON(http.StatusOK, profile)
}

// RemoveEducation deletes an education entry by id.
//
// @Summary      Remove education
// @Tags         profile
// @Produce      json
// @Security     TokenAuth
// @Param        edu_id  path      string  true  "Education id"
// @Success      200     {object}  domain.Profile
// @Failure      404     {object}  msgResponse
// @Router       /profile/education/{edu_id} [delete]
func (h *ProfileHandler) RemoveEducation(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	profile, err := h.profiles.RemoveEducation(c.Request().Context(), userID, c.Param("edu_id"))
	if err != nil {
		return err
	}
	metrics.SubdocMutationsTotal.WithLabelValues("education", "remove").Inc()
	return c.JSON(http.StatusOK, profile)
}

// Github lists the latest public repositories of a GitHub user.
//
// @Summary      GitHub repositories
// @Tags         profile
// @Produce      json
// @Param        username  path      string  true  "GitHub username"
// @Success      200       {array}   domain.GithubRepo
// @Failure      404       {object}  msgResponse
// @Failure      502       {object}  msgResponse
// @Router       /profile/github/{username} [get]
func (h *ProfileHandler) Github(c echo.Context) error {
	repos, err := h.profiles.GithubRepos(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, repos)
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
