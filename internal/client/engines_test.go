package client

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smc-go/smc/pkg/smc"
)

func TestEnginesClient_CreateSingleFirewall(t *testing.T) {
	t.Run("builds the engine payload", func(t *testing.T) {
		fake := newFakeSMC(t)

		fake.Mux.HandleFunc("/6.5/single_fw", func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, http.MethodPost, request.Method)

			var body smc.Engine

			require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
			assert.Equal(t, "fw-lab", body.Name)

			require.Len(t, body.Nodes, 1)
			assert.Equal(t, "fw-lab node 1", body.Nodes[0].FirewallNode.Name)
			assert.Equal(t, 1, body.Nodes[0].FirewallNode.NodeID)

			require.Len(t, body.PhysicalInterfaces, 1)
			physical := body.PhysicalInterfaces[0].PhysicalInterface
			assert.Equal(t, "0", physical.InterfaceID)
			require.Len(t, physical.Interfaces, 1)

			mgmt := physical.Interfaces[0].SingleNodeInterface
			assert.Equal(t, "172.18.1.5", mgmt.Address)
			assert.Equal(t, "172.18.1.0/24", mgmt.NetworkValue)
			assert.True(t, mgmt.PrimaryMgt)

			require.Len(t, body.DomainServerAddress, 2)
			assert.Equal(t, smc.DomainServerAddress{Rank: 1, Value: "8.8.8.8"}, body.DomainServerAddress[0])
			assert.Equal(t, smc.DomainServerAddress{Rank: 2, Value: "8.8.4.4"}, body.DomainServerAddress[1])

			writer.Header().Set("Location", fake.URL("/6.5/elements/single_fw/3"))
			writer.WriteHeader(http.StatusCreated)
		})

		smcClient := fake.NewLoggedInClient(t)

		result, err := smcClient.Engines().CreateSingleFirewall(context.Background(), &smc.FirewallCreateRequest{
			Name:        "fw-lab",
			MgmtIP:      "172.18.1.5",
			MgmtNetwork: "172.18.1.0/24",
			DNS:         []string{"8.8.8.8", "8.8.4.4"},
		})
		require.NoError(t, err)
		assert.Equal(t, fake.URL("/6.5/elements/single_fw/3"), result.Engine.Href)
		assert.False(t, result.Licensed)
		assert.NoError(t, result.LicenseError)
		assert.False(t, result.PartialSuccess())
	})

	t.Run("license bind succeeds", func(t *testing.T) {
		fake := newFakeSMC(t)

		bound := false

		fake.Mux.HandleFunc("/6.5/single_fw", func(writer http.ResponseWriter, request *http.Request) {
			writer.Header().Set("Location", fake.URL("/6.5/elements/single_fw/3"))
			writer.WriteHeader(http.StatusCreated)
		})

		fake.Mux.HandleFunc("/6.5/elements/single_fw/3", func(writer http.ResponseWriter, request *http.Request) {
			writeJSON(writer, http.StatusOK, smc.Engine{
				Element: smc.Element{
					Name: "fw-lab",
					Links: smc.Links{
						{Rel: "self", Href: fake.URL("/6.5/elements/single_fw/3")},
						{Rel: "bind", Href: fake.URL("/6.5/elements/single_fw/3/bind")},
					},
				},
			})
		})

		fake.Mux.HandleFunc("/6.5/elements/single_fw/3/bind", func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, http.MethodPost, request.Method)

			bound = true

			writer.WriteHeader(http.StatusOK)
		})

		smcClient := fake.NewLoggedInClient(t)

		result, err := smcClient.Engines().CreateSingleFirewall(context.Background(), &smc.FirewallCreateRequest{
			Name:        "fw-lab",
			MgmtIP:      "172.18.1.5",
			MgmtNetwork: "172.18.1.0/24",
			License:     true,
		})
		require.NoError(t, err)
		assert.True(t, bound)
		assert.True(t, result.Licensed)
		assert.NoError(t, result.LicenseError)
	})

	t.Run("license bind failure is a partial success", func(t *testing.T) {
		fake := newFakeSMC(t)

		fake.Mux.HandleFunc("/6.5/single_fw", func(writer http.ResponseWriter, request *http.Request) {
			writer.Header().Set("Location", fake.URL("/6.5/elements/single_fw/3"))
			writer.WriteHeader(http.StatusCreated)
		})

		fake.Mux.HandleFunc("/6.5/elements/single_fw/3", func(writer http.ResponseWriter, request *http.Request) {
			writeJSON(writer, http.StatusOK, smc.Engine{
				Element: smc.Element{
					Name: "fw-lab",
					Links: smc.Links{
						{Rel: "bind", Href: fake.URL("/6.5/elements/single_fw/3/bind")},
					},
				},
			})
		})

		fake.Mux.HandleFunc("/6.5/elements/single_fw/3/bind", func(writer http.ResponseWriter, request *http.Request) {
			writeJSON(writer, http.StatusBadRequest, map[string]interface{}{
				"message": "No license available",
			})
		})

		smcClient := fake.NewLoggedInClient(t)

		result, err := smcClient.Engines().CreateSingleFirewall(context.Background(), &smc.FirewallCreateRequest{
			Name:        "fw-lab",
			MgmtIP:      "172.18.1.5",
			MgmtNetwork: "172.18.1.0/24",
			License:     true,
		})
		require.NoError(t, err, "engine creation succeeded, bind failure is reported on the result")
		assert.True(t, result.PartialSuccess())
		assert.False(t, result.Licensed)
		require.Error(t, result.LicenseError)
		assert.Contains(t, result.LicenseError.Error(), "No license available")
	})

	t.Run("create failure", func(t *testing.T) {
		fake := newFakeSMC(t)

		fake.Mux.HandleFunc("/6.5/single_fw", func(writer http.ResponseWriter, request *http.Request) {
			writeJSON(writer, http.StatusConflict, map[string]interface{}{
				"message": "Element name fw-lab already exists",
			})
		})

		smcClient := fake.NewLoggedInClient(t)

		result, err := smcClient.Engines().CreateSingleFirewall(context.Background(), &smc.FirewallCreateRequest{
			Name:        "fw-lab",
			MgmtIP:      "172.18.1.5",
			MgmtNetwork: "172.18.1.0/24",
		})
		require.Error(t, err)
		assert.Nil(t, result)
		assert.True(t, smc.IsDuplicate(err))
	})

	t.Run("validation", func(t *testing.T) {
		fake := newFakeSMC(t)
		smcClient := fake.NewLoggedInClient(t)

		_, err := smcClient.Engines().CreateSingleFirewall(context.Background(), &smc.FirewallCreateRequest{
			MgmtIP:      "172.18.1.5",
			MgmtNetwork: "172.18.1.0/24",
		})
		require.ErrorIs(t, err, smc.ErrNameRequired)

		_, err = smcClient.Engines().CreateSingleFirewall(context.Background(), &smc.FirewallCreateRequest{
			Name:        "fw-lab",
			MgmtNetwork: "172.18.1.0/24",
		})
		require.ErrorIs(t, err, smc.ErrMgmtIPRequired)

		_, err = smcClient.Engines().CreateSingleFirewall(context.Background(), &smc.FirewallCreateRequest{
			Name:   "fw-lab",
			MgmtIP: "172.18.1.5",
		})
		require.ErrorIs(t, err, smc.ErrMgmtNetworkRequired)
	})
}

func TestEnginesClient_RemoveSingleFirewall(t *testing.T) {
	t.Run("releases the license before deletion", func(t *testing.T) {
		fake := newFakeSMC(t)
		fake.HandleSearch(t, []smc.ElementRef{
			{Href: fake.URL("/6.5/elements/single_fw/3"), Name: "fw-lab", Type: "single_fw"},
		})

		var calls []string

		fake.Mux.HandleFunc("/6.5/elements/single_fw/3", func(writer http.ResponseWriter, request *http.Request) {
			switch request.Method {
			case http.MethodGet:
				writeJSON(writer, http.StatusOK, smc.Engine{
					Element: smc.Element{
						Name: "fw-lab",
						Links: smc.Links{
							{Rel: "unbind", Href: fake.URL("/6.5/elements/single_fw/3/unbind")},
						},
					},
				})
			case http.MethodDelete:
				calls = append(calls, "delete")

				writer.WriteHeader(http.StatusNoContent)
			}
		})

		fake.Mux.HandleFunc("/6.5/elements/single_fw/3/unbind", func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, http.MethodPost, request.Method)

			calls = append(calls, "unbind")

			writer.WriteHeader(http.StatusOK)
		})

		smcClient := fake.NewLoggedInClient(t)

		require.NoError(t, smcClient.Engines().RemoveSingleFirewall(context.Background(), "fw-lab"))
		assert.Equal(t, []string{"unbind", "delete"}, calls)
	})

	t.Run("no license bound", func(t *testing.T) {
		fake := newFakeSMC(t)
		fake.HandleSearch(t, []smc.ElementRef{
			{Href: fake.URL("/6.5/elements/single_fw/3"), Name: "fw-lab", Type: "single_fw"},
		})

		deleted := false

		fake.Mux.HandleFunc("/6.5/elements/single_fw/3", func(writer http.ResponseWriter, request *http.Request) {
			switch request.Method {
			case http.MethodGet:
				writeJSON(writer, http.StatusOK, smc.Engine{Element: smc.Element{Name: "fw-lab"}})
			case http.MethodDelete:
				deleted = true

				writer.WriteHeader(http.StatusNoContent)
			}
		})

		smcClient := fake.NewLoggedInClient(t)

		require.NoError(t, smcClient.Engines().RemoveSingleFirewall(context.Background(), "fw-lab"))
		assert.True(t, deleted)
	})

	t.Run("unknown engine name", func(t *testing.T) {
		fake := newFakeSMC(t)
		fake.HandleSearch(t, nil)

		smcClient := fake.NewLoggedInClient(t)

		err := smcClient.Engines().RemoveSingleFirewall(context.Background(), "ghost")
		require.Error(t, err)
		assert.True(t, smc.IsNotFound(err))
	})
}
