package ai

// StructurePrompt asks the model for the document_elements JSON.
const StructurePrompt = `You are an expert document structure analyzer. Please process the provided PDF document.
Your task is to identify and extract content, discerning between different levels of headings,
paragraphs, and tables.

Return the output as a single JSON object. This object should contain one key: "document_elements".
The value of "document_elements" should be a list of objects.
Each object in the list represents a structural element from the document and must have two keys:
1. "type": A string indicating the type of element. Possible values are:
    - "heading_1" (for main titles/H1)
    - "heading_2" (for sub-titles/H2)
    - "heading_3" (for sub-sub-titles/H3)
    - "paragraph" (for regular text paragraphs)
    - "table_markdown" (for tables, represented as GitHub-flavored Markdown)
2. "content": A string containing:
    - For "heading_1", "heading_2", "heading_3": The text of the heading.
    - For "paragraph": The consolidated text of the paragraph. Internal line breaks from the PDF's visual formatting (that are not semantic new paragraphs) should be converted to spaces to form continuous prose.
    - For "table_markdown": The full table formatted as GitHub-flavored Markdown.

Example of the expected JSON structure:
{
  "document_elements": [
    { "type": "heading_1", "content": "The Main Title of the Document" },
    { "type": "paragraph", "content": "This is the first paragraph, and it flows continuously even if it spanned multiple lines in the PDF." },
    { "type": "heading_2", "content": "Introduction" }
  ]
}

Ensure you process the entire document and maintain the order of the elements.
Identify headings based on common academic paper structures.
Represent tables accurately in Markdown. Ensure semantic paragraphs are distinct elements.
The entire output must be a single, valid JSON object.
`
