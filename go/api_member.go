package shopserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	membermapper "github.com/Apurer/go-gin-shop-server/internal/domains/members/adapters/http/mapper"
	memberports "github.com/Apurer/go-gin-shop-server/internal/domains/members/ports"
	apierrors "github.com/Apurer/go-gin-shop-server/internal/shared/errors"
)

// MemberAPI wires HTTP transport with the members bounded context service.
type MemberAPI struct {
	service memberports.Service
}

// NewMemberAPI creates a MemberAPI backed by the provided service.
func NewMemberAPI(service memberports.Service) MemberAPI {
	return MemberAPI{service: service}
}

func toTransportAddress(model Address) membermapper.Address {
	return membermapper.Address{City: model.City, Street: model.Street, Zipcode: model.Zipcode}
}

func fromTransportAddress(address membermapper.Address) Address {
	return Address{City: address.City, Street: address.Street, Zipcode: address.Zipcode}
}

func fromTransportMember(member membermapper.Member) Member {
	return Member{Id: member.ID, Name: member.Name, Address: fromTransportAddress(member.Address)}
}

// Post /api/v1/members
// Register a member
func (api *MemberAPI) RegisterMember(c *gin.Context) {
	var payload MemberCreate
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	member, err := membermapper.ToDomainMember(membermapper.Member{Name: payload.Name, Address: toTransportAddress(payload.Address)})
	if err != nil {
		respondProblem(c, apierrors.NewValidationProblem(map[string]string{"name": err.Error()}))
		return
	}
	id, err := api.service.Register(c.Request.Context(), member)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MemberCreated{Id: id})
}

// Get /api/v1/members
// List members
func (api *MemberAPI) ListMembers(c *gin.Context) {
	members, err := api.service.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	data := make([]Member, 0, len(members))
	for _, member := range membermapper.FromDomainMembers(members) {
		data = append(data, fromTransportMember(member))
	}
	c.JSON(http.StatusOK, MemberList{Count: len(data), Data: data})
}

// Get /api/v1/members/:memberId
// Find member by ID
func (api *MemberAPI) GetMember(c *gin.Context) {
	id, ok := parseIDParam(c, "memberId")
	if !ok {
		return
	}
	member, err := api.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromTransportMember(membermapper.FromDomainMember(member)))
}

// Patch /api/v1/members/:memberId
// Rename a member
func (api *MemberAPI) UpdateMemberName(c *gin.Context) {
	id, ok := parseIDParam(c, "memberId")
	if !ok {
		return
	}
	var payload MemberNameUpdate
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	member, err := api.service.UpdateName(c.Request.Context(), id, payload.Name)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromTransportMember(membermapper.FromDomainMember(member)))
}
