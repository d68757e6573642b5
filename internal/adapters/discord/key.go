package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// DefaultSeparator separa la key de ruteo del resto del custom_id ("queue/join").
const DefaultSeparator = "/"

// SplitCustomID corta en la primera ocurrencia de sep.
func SplitCustomID(id, sep string) (key, local string, err error) {
	key, local, found := strings.Cut(id, sep)
	if !found {
		return "", "", fmt.Errorf("%w: %q", ErrMissingSeparator, id)
	}
	return key, local, nil
}

// JoinCustomID arma "<key><sep><local>".
func JoinCustomID(key, local, sep string) string {
	return key + sep + local
}

// extractKey saca la key de dispatch. Para components/modals reescribe el
// custom_id de la interacción con la parte local: el handler nunca ve el prefijo.
func extractKey(i *discordgo.Interaction, sep string) (string, error) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand, discordgo.InteractionApplicationCommandAutocomplete:
		data, ok := i.Data.(discordgo.ApplicationCommandInteractionData)
		if !ok {
			return "", nil
		}
		return data.Name, nil

	case discordgo.InteractionMessageComponent:
		data, ok := i.Data.(discordgo.MessageComponentInteractionData)
		if !ok {
			return "", nil
		}
		key, local, err := SplitCustomID(data.CustomID, sep)
		if err != nil {
			return "", err
		}
		data.CustomID = local
		i.Data = data
		return key, nil

	case discordgo.InteractionModalSubmit:
		data, ok := i.Data.(discordgo.ModalSubmitInteractionData)
		if !ok {
			return "", nil
		}
		key, local, err := SplitCustomID(data.CustomID, sep)
		if err != nil {
			return "", err
		}
		data.CustomID = local
		i.Data = data
		return key, nil
	}
	return "", nil
}
